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

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GroupService interface {
	// CreateGroup 创建群并广播 new_group_created；
	// 建群者必定以管理员身份入群，即使初始成员表中没有它。
	CreateGroup(ctx context.Context, req *dto.CreateGroupReq) (*dto.GroupDTO, error)
	GetGroup(ctx context.Context, groupID string) (*dto.GroupDTO, error)
	ListMembers(ctx context.Context, groupID string) ([]dto.GroupMemberDTO, error)
	// ListJoinableGroupIDs 参与者应自动加入的全部群房间：
	// 成员所在群与其作为建群者的群的并集（兼容历史数据）。
	ListJoinableGroupIDs(ctx context.Context, rawID string) ([]string, error)
}

type GroupServiceImpl struct {
	groupRepo       repository.GroupRepo
	participantRepo repository.ParticipantRepo
	emitter         realtime.Emitter
}

func NewGroupService(groupRepo repository.GroupRepo, participantRepo repository.ParticipantRepo, emitter realtime.Emitter) GroupService {
	return &GroupServiceImpl{groupRepo: groupRepo, participantRepo: participantRepo, emitter: emitter}
}

func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req *dto.CreateGroupReq) (*dto.GroupDTO, error) {
	if req.Name == "" || req.CreatedBy == "" {
		return nil, ErrParamInvalid
	}

	groupID := req.ID
	if groupID == "" {
		groupID = uuid.NewString()
	}
	visibility := req.Type
	if visibility != consts.GroupVisibilityPrivate {
		visibility = consts.GroupVisibilityPublic
	}

	adminSet := make(map[string]struct{}, len(req.Admins))
	for _, a := range req.Admins {
		adminSet[identity.Normalize(a)] = struct{}{}
	}

	members := make([]*model.GroupMember, 0, len(req.Members)+1)
	seen := make(map[string]struct{}, len(req.Members)+1)
	for _, m := range req.Members {
		key := identity.Normalize(m.ID)
		// 无法归一化的标识不是合法参与者，跳过而非报错
		if !identity.IsParticipantKey(key) {
			log.WarnContext(ctx, "group member skipped: invalid identifier", "groupId", groupID, "id", m.ID)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		role := consts.GroupRoleMember
		if _, isAdmin := adminSet[key]; isAdmin || m.IsAdmin {
			role = consts.GroupRoleAdmin
		}
		members = append(members, &model.GroupMember{ParticipantKey: key, Role: role})
	}

	// 建群者不变式：无论初始成员表怎么写，建群者都是管理员成员
	creatorKey := identity.Normalize(req.CreatedBy)
	if identity.IsParticipantKey(creatorKey) {
		if _, present := seen[creatorKey]; !present {
			members = append(members, &model.GroupMember{ParticipantKey: creatorKey, Role: consts.GroupRoleAdmin})
		} else {
			for _, m := range members {
				if m.ParticipantKey == creatorKey {
					m.Role = consts.GroupRoleAdmin
				}
			}
		}
	}

	if len(members) == 0 {
		return nil, ErrGroupNoMembers
	}

	group := &model.Group{
		ID:         groupID,
		Name:       req.Name,
		AvatarURL:  req.Avatar,
		CreatedBy:  req.CreatedBy,
		Visibility: visibility,
	}
	if err := s.groupRepo.CreateGroup(ctx, group, members); err != nil {
		return nil, err
	}

	res := s.toGroupDTO(group, members)

	// 通知所有初始成员（含建群者的其它会话）
	rooms := identity.AliasRooms(req.CreatedBy)
	for _, m := range members {
		rooms = append(rooms, identity.AliasRooms(m.ParticipantKey)...)
	}
	if err := s.emitter.EmitToRooms(ctx, dedupRooms(rooms), realtime.EventNewGroupCreated, res); err != nil {
		log.ErrorContext(ctx, "group created fanout failed", "groupId", groupID, "err", err)
	}

	return res, nil
}

func (s *GroupServiceImpl) GetGroup(ctx context.Context, groupID string) (*dto.GroupDTO, error) {
	group, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.toGroupDTO(group, members), nil
}

func (s *GroupServiceImpl) ListMembers(ctx context.Context, groupID string) ([]dto.GroupMemberDTO, error) {
	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, m.ParticipantKey)
	}
	profiles := make(map[string]*model.Participant, len(keys))
	if len(keys) > 0 {
		participants, err := s.participantRepo.GetByKeys(ctx, keys)
		if err != nil {
			// 资料查不到只降级成无资料的成员名单
			log.WarnContext(ctx, "member profile lookup failed", "groupId", groupID, "err", err)
		}
		for _, p := range participants {
			profiles[p.ParticipantKey] = p
		}
	}

	res := make([]dto.GroupMemberDTO, 0, len(members))
	for _, m := range members {
		item := dto.GroupMemberDTO{ParticipantKey: m.ParticipantKey, Role: m.Role}
		if p, ok := profiles[m.ParticipantKey]; ok {
			item.Name = p.Name
			item.AvatarURL = p.AvatarURL
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *GroupServiceImpl) ListJoinableGroupIDs(ctx context.Context, rawID string) ([]string, error) {
	key := identity.Normalize(rawID)

	var memberOf []string
	if identity.IsParticipantKey(key) {
		var err error
		memberOf, err = s.groupRepo.ListGroupIDsFor(ctx, key)
		if err != nil {
			return nil, err
		}
	}

	createdBy, err := s.groupRepo.ListGroupIDsCreatedBy(ctx, rawID)
	if err != nil {
		return nil, err
	}

	return dedupRooms(append(memberOf, createdBy...)), nil
}

func (s *GroupServiceImpl) toGroupDTO(group *model.Group, members []*model.GroupMember) *dto.GroupDTO {
	res := &dto.GroupDTO{}
	_ = copier.Copy(res, group)
	res.Members = make([]dto.GroupMemberDTO, 0, len(members))
	for _, m := range members {
		res.Members = append(res.Members, dto.GroupMemberDTO{ParticipantKey: m.ParticipantKey, Role: m.Role})
	}
	return res
}
