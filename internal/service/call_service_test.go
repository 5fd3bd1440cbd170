package service_test

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/realtime"
	"Ripple/internal/service"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCallService() (service.CallService, *MockGroupRepo, *MockEmitter) {
	groupRepo := new(MockGroupRepo)
	emitter := new(MockEmitter)
	return service.NewCallService(groupRepo, emitter), groupRepo, emitter
}

func TestCallUser_RoutesToNormalizedPeer(t *testing.T) {
	svc, _, emitter := newCallService()

	emitter.On("EmitToRooms", mock.Anything, []string{"9876543210"}, realtime.EventIncomingCall, mock.Anything).Return(nil)

	err := svc.CallUser(context.Background(), &dto.CallUserReq{
		From: "9123456789",
		To:   "+91 (98765) 43210",
	})

	assert.NoError(t, err)
	emitter.AssertCalled(t, "EmitToRooms", mock.Anything, []string{"9876543210"}, realtime.EventIncomingCall, mock.Anything)
}

func TestCallUser_InvalidPeerSilentlyDropped(t *testing.T) {
	svc, _, emitter := newCallService()

	err := svc.CallUser(context.Background(), &dto.CallUserReq{
		From: "9123456789",
		To:   "12345",
	})

	assert.NoError(t, err)
	emitter.AssertNotCalled(t, "EmitToRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupCall_ExcludesCaller(t *testing.T) {
	svc, groupRepo, emitter := newCallService()

	groupRepo.On("ListMembers", mock.Anything, "weekend-plan").Return([]*model.GroupMember{
		{GroupID: "weekend-plan", ParticipantKey: "9123456789"},
		{GroupID: "weekend-plan", ParticipantKey: "9876543210"},
	}, nil)

	var rooms []string
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, realtime.EventIncomingCall, mock.Anything).
		Run(func(args mock.Arguments) {
			rooms = args.Get(1).([]string)
		}).Return(nil)

	err := svc.GroupCall(context.Background(), &dto.GroupCallReq{
		From:    "+91 91234 56789",
		GroupID: "weekend-plan",
	})

	assert.NoError(t, err)
	assert.Contains(t, rooms, "9876543210")
	assert.Contains(t, rooms, "+9876543210")
	assert.NotContains(t, rooms, "9123456789")
	assert.NotContains(t, rooms, "+9123456789")
}

func TestGroupCall_MemberLookupFailure(t *testing.T) {
	svc, groupRepo, emitter := newCallService()

	groupRepo.On("ListMembers", mock.Anything, "weekend-plan").
		Return(nil, errors.New("db down"))

	err := svc.GroupCall(context.Background(), &dto.GroupCallReq{
		From:    "9123456789",
		GroupID: "weekend-plan",
	})

	assert.Error(t, err)
	emitter.AssertNotCalled(t, "EmitToRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectCall_SignalsCounterpart(t *testing.T) {
	svc, _, emitter := newCallService()

	emitter.On("EmitToRooms", mock.Anything, []string{"9123456789"}, realtime.EventCallRejected, mock.Anything).Return(nil)

	err := svc.RejectCall(context.Background(), &dto.CallActionReq{
		From: "9876543210",
		To:   "9123456789",
	})

	assert.NoError(t, err)
	emitter.AssertCalled(t, "EmitToRooms", mock.Anything, []string{"9123456789"}, realtime.EventCallRejected, mock.Anything)
}

func TestEndCall_SignalsCounterpart(t *testing.T) {
	svc, _, emitter := newCallService()

	emitter.On("EmitToRooms", mock.Anything, []string{"9123456789"}, realtime.EventCallEnded, mock.Anything).Return(nil)

	err := svc.EndCall(context.Background(), &dto.CallActionReq{
		From: "9876543210",
		To:   "+91 91234-56789",
	})

	assert.NoError(t, err)
	emitter.AssertCalled(t, "EmitToRooms", mock.Anything, []string{"9123456789"}, realtime.EventCallEnded, mock.Anything)
}
