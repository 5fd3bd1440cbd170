package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/identity"
	"Ripple/internal/realtime"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"sort"

	"github.com/jinzhu/copier"
)

type ChatService interface {
	// SendMessage 校验、规范化、落库并扇出一条消息。
	// 入参缺失会话或发送者时静默丢弃，返回 nil, nil。
	SendMessage(ctx context.Context, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetChatHistory(ctx context.Context, rawChatID string, limit int) ([]*dto.MessageDTO, error)
	// GetChatList 合并私聊与群聊会话，按最近活跃时间倒序；
	// 子查询失败只记入 Degraded，不使整个列表失败。
	GetChatList(ctx context.Context, participantKey string) (*dto.ChatListResult, error)
}

type ChatServiceImpl struct {
	messageRepo repository.MessageRepo
	groupRepo   repository.GroupRepo
	emitter     realtime.Emitter
}

func NewChatService(messageRepo repository.MessageRepo, groupRepo repository.GroupRepo, emitter realtime.Emitter) ChatService {
	return &ChatServiceImpl{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		emitter:     emitter,
	}
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	// 1. 校验：缺失会话或发送者的消息静默丢弃，仅留日志
	if req.ChatID == "" || req.Sender == "" {
		log.WarnContext(ctx, "message dropped: missing chat id or sender", "chatId", req.ChatID, "sender", req.Sender)
		return nil, nil
	}

	// 2. 规范化会话 ID
	chatID := identity.DeriveConversationKey(req.ChatID)
	partA, partB, isPrivate := identity.SplitPrivateChat(req.ChatID)

	// 3. 群聊先做发言权限检查，再落库，避免产生越权的孤儿记录
	var group *model.Group
	if !isPrivate {
		var err error
		group, err = s.groupRepo.GetGroup(ctx, chatID)
		if err != nil {
			return nil, err
		}
		if group != nil && group.Visibility == consts.GroupVisibilityPrivate {
			role, err := s.groupRepo.GetMembershipRole(ctx, chatID, identity.Normalize(req.Sender))
			if err != nil {
				return nil, err
			}
			if role != consts.GroupRoleAdmin {
				return nil, ErrNotGroupAdmin
			}
		}
	}

	// 4. 落库；失败中止调度，不做任何扇出
	msgType := req.Type
	if msgType == "" {
		msgType = "text"
	}
	msg := &model.Message{
		ChatID:   chatID,
		Sender:   req.Sender,
		Text:     req.Text,
		Type:     msgType,
		MediaURL: req.MediaURL,
	}
	if err := s.messageRepo.Append(ctx, msg); err != nil {
		return nil, err
	}

	res := s.toMessageDTO(msg)

	// 5. 计算目标房间集合并扇出；发射失败不影响已完成的持久化
	var rooms []string
	if isPrivate {
		rooms = s.privateFanoutRooms(req.Sender, partA, partB)
	} else {
		rooms = s.groupFanoutRooms(ctx, chatID, req.Sender, group)
	}
	if err := s.emitter.EmitToRooms(ctx, rooms, realtime.EventReceiveMessage, res); err != nil {
		log.ErrorContext(ctx, "message fanout failed", "chatId", chatID, "err", err)
	}

	return res, nil
}

// privateFanoutRooms 私聊目标房间：规范房间、反序房间，
// 以及两端各自的归一化标识（覆盖接收方与发送方的其它会话）。
func (s *ChatServiceImpl) privateFanoutRooms(sender, partA, partB string) []string {
	rooms := []string{
		partA + identity.Separator + partB,
		partB + identity.Separator + partA,
		partA,
		partB,
	}
	if senderKey := identity.Normalize(sender); identity.IsParticipantKey(senderKey) {
		rooms = append(rooms, senderKey)
	}
	return dedupRooms(rooms)
}

// groupFanoutRooms 群聊目标房间：群房间、发送者别名、建群者别名
// （无条件补偿建群者未写入成员行的历史数据）以及每个成员的别名。
func (s *ChatServiceImpl) groupFanoutRooms(ctx context.Context, groupID, sender string, group *model.Group) []string {
	rooms := []string{groupID}
	rooms = append(rooms, identity.AliasRooms(sender)...)

	if group == nil {
		return dedupRooms(rooms)
	}

	rooms = append(rooms, identity.AliasRooms(group.CreatedBy)...)

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		// 成员查询失败时仍然发往群房间本身，保持尽力而为
		log.WarnContext(ctx, "group member lookup failed during fanout", "groupId", groupID, "err", err)
		return dedupRooms(rooms)
	}
	for _, m := range members {
		rooms = append(rooms, identity.AliasRooms(m.ParticipantKey)...)
	}
	return dedupRooms(rooms)
}

func (s *ChatServiceImpl) GetChatHistory(ctx context.Context, rawChatID string, limit int) ([]*dto.MessageDTO, error) {
	chatID := identity.DeriveConversationKey(rawChatID)
	msgs, err := s.messageRepo.ListByChatID(ctx, chatID, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

func (s *ChatServiceImpl) GetChatList(ctx context.Context, participantKey string) (*dto.ChatListResult, error) {
	result := &dto.ChatListResult{Chats: make([]*dto.ChatListItem, 0)}

	// 群会话
	groupIDs, err := s.groupRepo.ListGroupIDsFor(ctx, participantKey)
	if err != nil {
		log.WarnContext(ctx, "chat list degraded: group lookup failed", "participant", participantKey, "err", err)
		result.Degraded = append(result.Degraded, "groups")
	}
	for _, groupID := range groupIDs {
		item, err := s.buildGroupItem(ctx, groupID)
		if err != nil {
			result.Degraded = append(result.Degraded, "group:"+groupID)
			continue
		}
		result.Chats = append(result.Chats, item)
	}

	// 私聊会话
	chatIDs, err := s.messageRepo.ListPrivateChatIDs(ctx, participantKey)
	if err != nil {
		log.WarnContext(ctx, "chat list degraded: private lookup failed", "participant", participantKey, "err", err)
		result.Degraded = append(result.Degraded, "private")
	}
	for _, chatID := range chatIDs {
		// LIKE 会误匹配含下划线的群 ID，按私聊形态过滤
		if _, _, ok := identity.SplitPrivateChat(chatID); !ok {
			continue
		}
		item, err := s.buildPrivateItem(ctx, chatID, participantKey)
		if err != nil {
			result.Degraded = append(result.Degraded, "chat:"+chatID)
			continue
		}
		result.Chats = append(result.Chats, item)
	}

	sort.Slice(result.Chats, func(i, j int) bool {
		return result.Chats[i].LastActivity.After(result.Chats[j].LastActivity)
	})
	return result, nil
}

func (s *ChatServiceImpl) buildGroupItem(ctx context.Context, groupID string) (*dto.ChatListItem, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	item := &dto.ChatListItem{
		ChatID:       groupID,
		Kind:         "group",
		Name:         group.Name,
		AvatarURL:    group.AvatarURL,
		LastActivity: group.CreatedAt,
	}

	last, err := s.messageRepo.GetLastMessage(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		item.LastMessage = s.toMessageDTO(last)
		item.LastActivity = last.CreatedAt
	}
	return item, nil
}

func (s *ChatServiceImpl) buildPrivateItem(ctx context.Context, chatID, participantKey string) (*dto.ChatListItem, error) {
	last, err := s.messageRepo.GetLastMessage(ctx, chatID)
	if err != nil {
		return nil, err
	}

	item := &dto.ChatListItem{
		ChatID: chatID,
		Kind:   "private",
	}
	if a, b, ok := identity.SplitPrivateChat(chatID); ok {
		if a == participantKey {
			item.PeerKey = b
		} else {
			item.PeerKey = a
		}
	}
	if last != nil {
		item.LastMessage = s.toMessageDTO(last)
		item.LastActivity = last.CreatedAt
	}
	return item, nil
}

func (s *ChatServiceImpl) toMessageDTO(m *model.Message) *dto.MessageDTO {
	res := &dto.MessageDTO{}
	_ = copier.Copy(res, m)
	return res
}

// dedupRooms 目标房间在发射前先做集合化，
// 同一事件不会因为别名重叠被重复投递。
func dedupRooms(rooms []string) []string {
	seen := make(map[string]struct{}, len(rooms))
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
