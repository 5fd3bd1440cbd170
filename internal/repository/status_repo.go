package repository

import (
	"Ripple/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type StatusRepo interface {
	Create(ctx context.Context, status *model.Status) error
	// ListActive 仅返回未过期的状态，按发布时间倒序；过期行留在表中不做清理
	ListActive(ctx context.Context, now time.Time) ([]*model.Status, error)
}

type StatusRepoImpl struct {
	db *gorm.DB
}

func NewStatusRepo(db *gorm.DB) StatusRepo {
	return &StatusRepoImpl{db: db}
}

func (s *StatusRepoImpl) Create(ctx context.Context, status *model.Status) error {
	if err := s.db.WithContext(ctx).Create(status).Error; err != nil {
		return errors.Wrap(err, "create status")
	}
	return nil
}

func (s *StatusRepoImpl) ListActive(ctx context.Context, now time.Time) ([]*model.Status, error) {
	statuses := make([]*model.Status, 0)
	err := s.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Find(&statuses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active statuses")
	}
	return statuses, nil
}
