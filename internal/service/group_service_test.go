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

func newGroupService() (service.GroupService, *MockGroupRepo, *MockParticipantRepo, *MockEmitter) {
	groupRepo := new(MockGroupRepo)
	participantRepo := new(MockParticipantRepo)
	emitter := new(MockEmitter)
	return service.NewGroupService(groupRepo, participantRepo, emitter), groupRepo, participantRepo, emitter
}

func memberRoles(members []*model.GroupMember) map[string]string {
	roles := make(map[string]string, len(members))
	for _, m := range members {
		roles[m.ParticipantKey] = m.Role
	}
	return roles
}

func TestCreateGroup_CreatorAlwaysAdminMember(t *testing.T) {
	svc, groupRepo, _, emitter := newGroupService()

	var stored []*model.GroupMember
	groupRepo.On("CreateGroup", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*model.GroupMember)
		}).Return(nil)
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, realtime.EventNewGroupCreated, mock.Anything).Return(nil)

	// 初始成员表里没有建群者
	res, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "周末计划",
		CreatedBy: "+91 98765 43210",
		Members: []dto.CreateGroupMemberReq{
			{ID: "9123456789"},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	roles := memberRoles(stored)
	assert.Equal(t, "admin", roles["9876543210"])
	assert.Equal(t, "member", roles["9123456789"])
}

func TestCreateGroup_CreatorUpgradedToAdmin(t *testing.T) {
	svc, groupRepo, _, emitter := newGroupService()

	var stored []*model.GroupMember
	groupRepo.On("CreateGroup", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*model.GroupMember)
		}).Return(nil)
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// 建群者出现在成员表里但只是普通成员
	_, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "book club",
		CreatedBy: "9876543210",
		Members: []dto.CreateGroupMemberReq{
			{ID: "+91 98765 43210"},
			{ID: "9123456789"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "admin", memberRoles(stored)["9876543210"])
}

func TestCreateGroup_MembersDedupedAndInvalidSkipped(t *testing.T) {
	svc, groupRepo, _, emitter := newGroupService()

	var stored []*model.GroupMember
	groupRepo.On("CreateGroup", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*model.GroupMember)
		}).Return(nil)
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "dedup",
		CreatedBy: "9876543210",
		Members: []dto.CreateGroupMemberReq{
			{ID: "9123456789"},
			{ID: "+91 91234 56789"}, // 同一参与者的另一种写法
			{ID: "12345"},           // 无法归一化，跳过
		},
	})

	assert.NoError(t, err)
	// 去重后：9123456789 一行，建群者一行
	assert.Len(t, stored, 2)
}

func TestCreateGroup_NoValidMembersRejected(t *testing.T) {
	svc, groupRepo, _, _ := newGroupService()

	_, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "ghost town",
		CreatedBy: "12345", // 建群者标识也非法
		Members: []dto.CreateGroupMemberReq{
			{ID: "777"},
		},
	})

	assert.ErrorIs(t, err, service.ErrGroupNoMembers)
	groupRepo.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateGroup_AdminsListGrantsRole(t *testing.T) {
	svc, groupRepo, _, emitter := newGroupService()

	var stored []*model.GroupMember
	groupRepo.On("CreateGroup", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*model.GroupMember)
		}).Return(nil)
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "mods",
		CreatedBy: "9876543210",
		Admins:    []string{"+91 91234 56789"},
		Members: []dto.CreateGroupMemberReq{
			{ID: "9123456789"},
			{ID: "9000000000"},
		},
	})

	assert.NoError(t, err)
	roles := memberRoles(stored)
	assert.Equal(t, "admin", roles["9123456789"])
	assert.Equal(t, "member", roles["9000000000"])
}

func TestCreateGroup_FanoutCoversAllMembers(t *testing.T) {
	svc, groupRepo, _, emitter := newGroupService()

	groupRepo.On("CreateGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var rooms []string
	emitter.On("EmitToRooms", mock.Anything, mock.Anything, realtime.EventNewGroupCreated, mock.Anything).
		Run(func(args mock.Arguments) {
			rooms = args.Get(1).([]string)
		}).Return(nil)

	_, err := svc.CreateGroup(context.Background(), &dto.CreateGroupReq{
		Name:      "broadcasted",
		CreatedBy: "+91 98765 43210",
		Members: []dto.CreateGroupMemberReq{
			{ID: "9123456789"},
		},
	})

	assert.NoError(t, err)
	set := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		set[r] = struct{}{}
	}
	assert.Contains(t, set, "9876543210")
	assert.Contains(t, set, "+9876543210")
	assert.Contains(t, set, "9123456789")
	assert.Contains(t, set, "+9123456789")
}

func TestGetGroup_NotFound(t *testing.T) {
	svc, groupRepo, _, _ := newGroupService()

	groupRepo.On("GetGroup", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrGroupNotFound)
}

func TestListMembers_EnrichedWithProfiles(t *testing.T) {
	svc, groupRepo, participantRepo, _ := newGroupService()

	avatar := "media/2024/05/avatar.png"
	groupRepo.On("ListMembers", mock.Anything, "weekend-plan").Return([]*model.GroupMember{
		{GroupID: "weekend-plan", ParticipantKey: "9123456789", Role: "admin"},
		{GroupID: "weekend-plan", ParticipantKey: "9876543210", Role: "member"},
	}, nil)
	// 只有一位成员有注册资料
	participantRepo.On("GetByKeys", mock.Anything, []string{"9123456789", "9876543210"}).
		Return([]*model.Participant{
			{ParticipantKey: "9123456789", Name: "Asha", AvatarURL: &avatar},
		}, nil)

	members, err := svc.ListMembers(context.Background(), "weekend-plan")
	assert.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Equal(t, "Asha", members[0].Name)
	assert.Equal(t, &avatar, members[0].AvatarURL)
	assert.Equal(t, "admin", members[0].Role)
	assert.Empty(t, members[1].Name)
	assert.Nil(t, members[1].AvatarURL)
}

func TestListMembers_ProfileLookupFailureDegrades(t *testing.T) {
	svc, groupRepo, participantRepo, _ := newGroupService()

	groupRepo.On("ListMembers", mock.Anything, "weekend-plan").Return([]*model.GroupMember{
		{GroupID: "weekend-plan", ParticipantKey: "9123456789", Role: "member"},
	}, nil)
	participantRepo.On("GetByKeys", mock.Anything, mock.Anything).
		Return(nil, errors.New("participants table gone"))

	// 资料查询失败不阻断成员名单本身
	members, err := svc.ListMembers(context.Background(), "weekend-plan")
	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, "9123456789", members[0].ParticipantKey)
	assert.Empty(t, members[0].Name)
}

func TestListJoinableGroupIDs_MergesMemberAndCreated(t *testing.T) {
	svc, groupRepo, _, _ := newGroupService()

	groupRepo.On("ListGroupIDsFor", mock.Anything, "9876543210").
		Return([]string{"g1", "g2"}, nil)
	groupRepo.On("ListGroupIDsCreatedBy", mock.Anything, "+91 98765 43210").
		Return([]string{"g2", "g3"}, nil)

	ids, err := svc.ListJoinableGroupIDs(context.Background(), "+91 98765 43210")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"g1", "g2", "g3"}, ids)
}

func TestListJoinableGroupIDs_CreatedLookupFailure(t *testing.T) {
	svc, groupRepo, _, _ := newGroupService()

	groupRepo.On("ListGroupIDsFor", mock.Anything, "9876543210").Return([]string{"g1"}, nil)
	groupRepo.On("ListGroupIDsCreatedBy", mock.Anything, "9876543210").
		Return(nil, errors.New("legacy table locked"))

	_, err := svc.ListJoinableGroupIDs(context.Background(), "9876543210")
	assert.Error(t, err)
}
