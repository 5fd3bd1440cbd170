package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupSvc service.GroupService
}

func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup HTTP 建群入口，与 WebSocket 的 create_group 事件走同一服务
func (s *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupReq
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = c.GetString("participant_key")
	}
	group, err := s.groupSvc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, group)
}

func (s *GroupHandler) GetGroup(c *gin.Context) {
	groupID := c.Param("group_id")
	if groupID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	group, err := s.groupSvc.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, group)
}

func (s *GroupHandler) ListMembers(c *gin.Context) {
	groupID := c.Param("group_id")
	if groupID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	members, err := s.groupSvc.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}
