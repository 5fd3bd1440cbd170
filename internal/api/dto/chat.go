package dto

import "time"

// SendMessageReq 发送消息事件体。
// 经 WebSocket 进入时字段缺失不报错，由调度器静默丢弃。
type SendMessageReq struct {
	ChatID   string  `json:"chatId"`
	Sender   string  `json:"sender"`
	Text     string  `json:"text"`
	Type     string  `json:"type"`
	MediaURL *string `json:"mediaUrl,omitempty"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID        uint64    `json:"id"`
	ChatID    string    `json:"chatId"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	MediaURL  *string   `json:"mediaUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatListItem 会话列表项，私聊与群聊统一形态
type ChatListItem struct {
	ChatID string `json:"chatId"`
	Kind   string `json:"kind"` // private / group
	// PeerKey 私聊对端的归一化标识（私聊有效）
	PeerKey string `json:"peerKey,omitempty"`
	// Name 群名称（群聊有效）
	Name         string      `json:"name,omitempty"`
	AvatarURL    *string     `json:"avatarUrl,omitempty"`
	LastMessage  *MessageDTO `json:"lastMessage,omitempty"`
	LastActivity time.Time   `json:"lastActivity"`
}

// ChatListResult 会话列表响应：数据与降级明细并存，
// 单个子查询失败只降级，不拖垮整个列表。
type ChatListResult struct {
	Chats    []*ChatListItem `json:"chats"`
	Degraded []string        `json:"degraded,omitempty"`
}
