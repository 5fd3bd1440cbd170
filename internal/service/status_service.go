package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/realtime"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

// StatusService 状态动态：24 小时过期，发布后广播全量在线连接
type StatusService interface {
	PostStatus(ctx context.Context, sender string, req *dto.PostStatusReq) (*dto.StatusDTO, error)
	// ListStatuses 返回所有未过期状态，最新在前
	ListStatuses(ctx context.Context) ([]*dto.StatusDTO, error)
}

type StatusServiceImpl struct {
	statusRepo repository.StatusRepo
	emitter    realtime.Emitter
}

func NewStatusService(statusRepo repository.StatusRepo, emitter realtime.Emitter) StatusService {
	return &StatusServiceImpl{statusRepo: statusRepo, emitter: emitter}
}

func (s *StatusServiceImpl) PostStatus(ctx context.Context, sender string, req *dto.PostStatusReq) (*dto.StatusDTO, error) {
	if sender == "" || (req.Text == "" && req.MediaURL == nil) {
		return nil, ErrParamInvalid
	}

	now := time.Now()
	status := &model.Status{
		Sender:    sender,
		Text:      req.Text,
		MediaURL:  req.MediaURL,
		Type:      req.Type,
		CreatedAt: now,
		ExpiresAt: now.Add(consts.StatusTTLHours * time.Hour),
	}
	if status.Type == "" {
		status.Type = "text"
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}

	statusDTO := &dto.StatusDTO{}
	if err := copier.Copy(statusDTO, status); err != nil {
		return nil, UnExpectedError
	}

	// 广播失败不回滚已落库的状态，拉取接口仍可见
	if err := s.emitter.Broadcast(ctx, realtime.EventNewStatus, statusDTO); err != nil {
		log.ErrorContext(ctx, "broadcast status failed", "statusId", status.ID, "error", err)
	}
	return statusDTO, nil
}

func (s *StatusServiceImpl) ListStatuses(ctx context.Context) ([]*dto.StatusDTO, error) {
	statuses, err := s.statusRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	statusDTOs := make([]*dto.StatusDTO, 0, len(statuses))
	if err := copier.Copy(&statusDTOs, &statuses); err != nil {
		return nil, UnExpectedError
	}
	return statusDTOs, nil
}
