package repository

import (
	"Ripple/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepo interface {
	// Append 追加一条消息，落库后由数据库回填自增 ID 与时间戳
	Append(ctx context.Context, msg *model.Message) error
	ListByChatID(ctx context.Context, chatID string, limit int) ([]*model.Message, error)
	// ListPrivateChatIDs 列出参与者出现过的所有私聊会话 ID
	ListPrivateChatIDs(ctx context.Context, participantKey string) ([]string, error)
	GetLastMessage(ctx context.Context, chatID string) (*model.Message, error)
}

type MessageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &MessageRepoImpl{db: db}
}

func (s *MessageRepoImpl) Append(ctx context.Context, msg *model.Message) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return errors.Wrap(err, "append message")
	}
	return nil
}

func (s *MessageRepoImpl) ListByChatID(ctx context.Context, chatID string, limit int) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	query := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&msgs).Error; err != nil {
		return nil, errors.Wrap(err, "list messages by chat id")
	}
	return msgs, nil
}

// ListPrivateChatIDs 规范私聊 ID 为升序拼接的两段 key，参与者必然出现在首段或尾段
func (s *MessageRepoImpl) ListPrivateChatIDs(ctx context.Context, participantKey string) ([]string, error) {
	chatIDs := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Distinct("chat_id").
		Where("chat_id LIKE ? OR chat_id LIKE ?", participantKey+"\\_%", "%\\_"+participantKey).
		Pluck("chat_id", &chatIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list private chat ids")
	}
	return chatIDs, nil
}

func (s *MessageRepoImpl) GetLastMessage(ctx context.Context, chatID string) (*model.Message, error) {
	msg := &model.Message{}
	result := s.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id DESC").
		First(msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "query last message")
	}
	return msg, nil
}
