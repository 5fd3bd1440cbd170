package repository

import (
	"Ripple/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GroupRepo interface {
	// CreateGroup 开启事务创建群及初始成员
	CreateGroup(ctx context.Context, group *model.Group, members []*model.GroupMember) error
	GetGroup(ctx context.Context, groupID string) (*model.Group, error)
	ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error)
	// ListGroupIDsFor 参与者作为成员所在的全部群
	ListGroupIDsFor(ctx context.Context, participantKey string) ([]string, error)
	// ListGroupIDsCreatedBy 参与者作为建群者的全部群（兼容建群者未写入成员行的历史数据）
	ListGroupIDsCreatedBy(ctx context.Context, rawID string) ([]string, error)
	// GetMembershipRole 返回成员角色，不存在成员行时返回空串
	GetMembershipRole(ctx context.Context, groupID string, participantKey string) (string, error)
}

type GroupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &GroupRepoImpl{db: db}
}

func (s *GroupRepoImpl) CreateGroup(ctx context.Context, group *model.Group, members []*model.GroupMember) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		for _, m := range members {
			m.GroupID = group.ID
			m.JoinedAt = time.Now()
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "create group")
	}
	return nil
}

func (s *GroupRepoImpl) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	group := &model.Group{}
	result := s.db.WithContext(ctx).First(group, "id = ?", groupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "query group")
	}
	return group, nil
}

func (s *GroupRepoImpl) ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	members := make([]*model.GroupMember, 0)
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&members).Error
	if err != nil {
		return nil, errors.Wrap(err, "list group members")
	}
	return members, nil
}

func (s *GroupRepoImpl) ListGroupIDsFor(ctx context.Context, participantKey string) ([]string, error) {
	groupIDs := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("participant_key = ?", participantKey).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list groups for participant")
	}
	return groupIDs, nil
}

func (s *GroupRepoImpl) ListGroupIDsCreatedBy(ctx context.Context, rawID string) ([]string, error) {
	groupIDs := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.Group{}).
		Where("created_by = ?", rawID).
		Pluck("id", &groupIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list groups created by")
	}
	return groupIDs, nil
}

func (s *GroupRepoImpl) GetMembershipRole(ctx context.Context, groupID string, participantKey string) (string, error) {
	member := &model.GroupMember{}
	result := s.db.WithContext(ctx).
		Where("group_id = ? AND participant_key = ?", groupID, participantKey).
		First(member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", errors.Wrap(result.Error, "query membership role")
	}
	return member.Role, nil
}
