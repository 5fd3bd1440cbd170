package service_test

import (
	"Ripple/internal/model"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

func testTime(minute int) time.Time {
	return time.Date(2024, 5, 1, 12, minute, 0, 0, time.UTC)
}

// MockMessageRepo 基于 testify/mock 的消息仓储替身
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Append(ctx context.Context, msg *model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) ListByChatID(ctx context.Context, chatID string, limit int) ([]*model.Message, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Message), args.Error(1)
}

func (m *MockMessageRepo) ListPrivateChatIDs(ctx context.Context, participantKey string) ([]string, error) {
	args := m.Called(ctx, participantKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMessageRepo) GetLastMessage(ctx context.Context, chatID string) (*model.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

// MockParticipantRepo 参与者仓储替身
type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) GetByKey(ctx context.Context, participantKey string) (*model.Participant, error) {
	args := m.Called(ctx, participantKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepo) GetByKeys(ctx context.Context, participantKeys []string) ([]*model.Participant, error) {
	args := m.Called(ctx, participantKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *MockParticipantRepo) Upsert(ctx context.Context, participant *model.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

// MockGroupRepo 群仓储替身
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) CreateGroup(ctx context.Context, group *model.Group, members []*model.GroupMember) error {
	args := m.Called(ctx, group, members)
	return args.Error(0)
}

func (m *MockGroupRepo) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepo) ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.GroupMember), args.Error(1)
}

func (m *MockGroupRepo) ListGroupIDsFor(ctx context.Context, participantKey string) ([]string, error) {
	args := m.Called(ctx, participantKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGroupRepo) ListGroupIDsCreatedBy(ctx context.Context, rawID string) ([]string, error) {
	args := m.Called(ctx, rawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGroupRepo) GetMembershipRole(ctx context.Context, groupID string, participantKey string) (string, error) {
	args := m.Called(ctx, groupID, participantKey)
	return args.String(0), args.Error(1)
}

// MockStatusRepo 状态仓储替身
type MockStatusRepo struct {
	mock.Mock
}

func (m *MockStatusRepo) Create(ctx context.Context, status *model.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepo) ListActive(ctx context.Context, now time.Time) ([]*model.Status, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Status), args.Error(1)
}

// MockEmitter 事件发射器替身，记录每次发射的房间集合与事件名
type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) EmitToRooms(ctx context.Context, rooms []string, event string, data interface{}) error {
	args := m.Called(ctx, rooms, event, data)
	return args.Error(0)
}

func (m *MockEmitter) Broadcast(ctx context.Context, event string, data interface{}) error {
	args := m.Called(ctx, event, data)
	return args.Error(0)
}
