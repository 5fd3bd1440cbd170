package service_test

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/realtime"
	"Ripple/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStatusService() (service.StatusService, *MockStatusRepo, *MockEmitter) {
	statusRepo := new(MockStatusRepo)
	emitter := new(MockEmitter)
	return service.NewStatusService(statusRepo, emitter), statusRepo, emitter
}

func TestPostStatus_Sets24HourExpiry(t *testing.T) {
	svc, statusRepo, emitter := newStatusService()

	var stored *model.Status
	statusRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Status")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.Status)
		}).Return(nil)
	emitter.On("Broadcast", mock.Anything, realtime.EventNewStatus, mock.Anything).Return(nil)

	res, err := svc.PostStatus(context.Background(), "9123456789", &dto.PostStatusReq{
		Text: "out for the weekend",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, "9123456789", stored.Sender)
	assert.Equal(t, 24*time.Hour, stored.ExpiresAt.Sub(stored.CreatedAt))
	emitter.AssertCalled(t, "Broadcast", mock.Anything, realtime.EventNewStatus, mock.Anything)
}

func TestPostStatus_EmptyPayloadRejected(t *testing.T) {
	svc, statusRepo, _ := newStatusService()

	_, err := svc.PostStatus(context.Background(), "9123456789", &dto.PostStatusReq{})
	assert.ErrorIs(t, err, service.ErrParamInvalid)

	_, err = svc.PostStatus(context.Background(), "", &dto.PostStatusReq{Text: "hi"})
	assert.ErrorIs(t, err, service.ErrParamInvalid)

	statusRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostStatus_BroadcastFailureKeepsStatus(t *testing.T) {
	svc, statusRepo, emitter := newStatusService()

	statusRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emitter.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bus unavailable"))

	res, err := svc.PostStatus(context.Background(), "9123456789", &dto.PostStatusReq{Text: "still visible"})

	// 广播失败不影响已落库的状态
	assert.NoError(t, err)
	assert.NotNil(t, res)
}

func TestListStatuses_ReturnsActiveNewestFirst(t *testing.T) {
	svc, statusRepo, _ := newStatusService()

	statusRepo.On("ListActive", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*model.Status{
			{ID: 2, Sender: "9876543210", Text: "newer", CreatedAt: testTime(20)},
			{ID: 1, Sender: "9123456789", Text: "older", CreatedAt: testTime(10)},
		}, nil)

	statuses, err := svc.ListStatuses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.Equal(t, "newer", statuses[0].Text)
	assert.Equal(t, "older", statuses[1].Text)
}
