package identity

import "strings"

// Separator 私聊会话 ID 中两个参与者之间的分隔符
const Separator = "_"

// KeyLength 合法参与者标识的固定位数
const KeyLength = 10

// Normalize 将任意手机号形式的标识归一化：去掉所有非数字字符后取末 10 位。
// 不足 10 位时原样返回剩余数字串，调用方应视其为非法参与者标识。
func Normalize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > KeyLength {
		return digits[len(digits)-KeyLength:]
	}
	return digits
}

// IsParticipantKey 判断归一化结果是否为合法参与者标识
func IsParticipantKey(key string) bool {
	return len(key) == KeyLength
}

// SplitPrivateChat 尝试将原始会话 ID 解析为私聊的两个归一化参与者标识。
// 仅当 ID 恰好包含一个分隔符且两部分均归一化为合法标识时返回 ok。
func SplitPrivateChat(raw string) (a, b string, ok bool) {
	parts := strings.Split(raw, Separator)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b = Normalize(parts[0]), Normalize(parts[1])
	if !IsParticipantKey(a) || !IsParticipantKey(b) {
		return "", "", false
	}
	return a, b, true
}

// DeriveConversationKey 计算会话的规范房间名。
// 私聊形态的 ID 归一化并按字典序升序拼接，保证 A_B 与 B_A 收敛到同一房间；
// 其余形态视为群 ID，原样返回。
func DeriveConversationKey(raw string) string {
	a, b, ok := SplitPrivateChat(raw)
	if !ok {
		return raw
	}
	if a > b {
		a, b = b, a
	}
	return a + Separator + b
}

// AliasRooms 计算一个标识可达的全部房间别名（原始、归一化、加 "+" 前缀），
// 去重后返回。所有发射点统一经由此函数推导别名。
func AliasRooms(id string) []string {
	rooms := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)

	add := func(room string) {
		if room == "" {
			return
		}
		if _, dup := seen[room]; dup {
			return
		}
		seen[room] = struct{}{}
		rooms = append(rooms, room)
	}

	add(id)
	key := Normalize(id)
	if IsParticipantKey(key) {
		add(key)
		add("+" + key)
	}
	return rooms
}
