package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/identity"
	"Ripple/internal/realtime"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
)

// CallService 呼叫信令路由。信令不落库、不重试、不追踪确认，
// 路由规则与消息扇出同构。
type CallService interface {
	// CallUser 仅向被叫的归一化标识房间推送 incoming_call，
	// 主叫已知道确切的对端标识，无需多别名扇出。
	CallUser(ctx context.Context, req *dto.CallUserReq) error
	// GroupCall 向除主叫外的所有群成员多别名推送
	GroupCall(ctx context.Context, req *dto.GroupCallReq) error
	RejectCall(ctx context.Context, req *dto.CallActionReq) error
	EndCall(ctx context.Context, req *dto.CallActionReq) error
}

type CallServiceImpl struct {
	groupRepo repository.GroupRepo
	emitter   realtime.Emitter
}

func NewCallService(groupRepo repository.GroupRepo, emitter realtime.Emitter) CallService {
	return &CallServiceImpl{groupRepo: groupRepo, emitter: emitter}
}

func (s *CallServiceImpl) CallUser(ctx context.Context, req *dto.CallUserReq) error {
	return s.signalPeer(ctx, realtime.EventIncomingCall, req.From, req.To, req.Payload)
}

func (s *CallServiceImpl) GroupCall(ctx context.Context, req *dto.GroupCallReq) error {
	if req.GroupID == "" || req.From == "" {
		log.WarnContext(ctx, "group call dropped: missing group or caller", "groupId", req.GroupID)
		return nil
	}

	members, err := s.groupRepo.ListMembers(ctx, req.GroupID)
	if err != nil {
		return err
	}

	callerKey := identity.Normalize(req.From)
	rooms := make([]string, 0, len(members)*3)
	for _, m := range members {
		if m.ParticipantKey == callerKey {
			continue
		}
		rooms = append(rooms, identity.AliasRooms(m.ParticipantKey)...)
	}

	data := &dto.CallEventDTO{From: req.From, GroupID: req.GroupID, Payload: req.Payload}
	return s.emitter.EmitToRooms(ctx, dedupRooms(rooms), realtime.EventIncomingCall, data)
}

func (s *CallServiceImpl) RejectCall(ctx context.Context, req *dto.CallActionReq) error {
	return s.signalPeer(ctx, realtime.EventCallRejected, req.From, req.To, req.Payload)
}

func (s *CallServiceImpl) EndCall(ctx context.Context, req *dto.CallActionReq) error {
	return s.signalPeer(ctx, realtime.EventCallEnded, req.From, req.To, req.Payload)
}

// signalPeer 把信令发往对端的归一化标识房间。
// 对端标识无法归一化时跳过发射，而非报错。
func (s *CallServiceImpl) signalPeer(ctx context.Context, event, from, to string, payload map[string]interface{}) error {
	peerKey := identity.Normalize(to)
	if !identity.IsParticipantKey(peerKey) {
		log.WarnContext(ctx, "call signal dropped: invalid peer", "event", event, "to", to)
		return nil
	}

	data := &dto.CallEventDTO{From: from, Payload: payload}
	return s.emitter.EmitToRooms(ctx, []string{peerKey}, event, data)
}
