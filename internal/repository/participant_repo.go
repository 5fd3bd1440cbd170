package repository

import (
	"Ripple/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantRepo interface {
	GetByKey(ctx context.Context, participantKey string) (*model.Participant, error)
	GetByKeys(ctx context.Context, participantKeys []string) ([]*model.Participant, error)
	Upsert(ctx context.Context, participant *model.Participant) error
}

type ParticipantRepoImpl struct {
	db *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) ParticipantRepo {
	return &ParticipantRepoImpl{db: db}
}

// GetByKey 按归一化标识查询参与者，未找到时返回 nil, nil
func (s *ParticipantRepoImpl) GetByKey(ctx context.Context, participantKey string) (*model.Participant, error) {
	participant := &model.Participant{}
	result := s.db.WithContext(ctx).
		Where("participant_key = ?", participantKey).
		First(participant)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "query participant by key")
	}

	return participant, nil
}

func (s *ParticipantRepoImpl) GetByKeys(ctx context.Context, participantKeys []string) ([]*model.Participant, error) {
	participants := make([]*model.Participant, 0)
	result := s.db.WithContext(ctx).
		Where("participant_key IN ?", participantKeys).
		Find(&participants)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "query participants by keys")
	}
	return participants, nil
}

// Upsert 注册或按归一化标识更新参与者资料
func (s *ParticipantRepoImpl) Upsert(ctx context.Context, participant *model.Participant) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone", "name", "avatar_url", "about", "updated_at"}),
		}).
		Create(participant).Error
	if err != nil {
		return errors.Wrap(err, "upsert participant")
	}
	return nil
}
