package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	statusSvc service.StatusService
}

func NewStatusHandler(statusSvc service.StatusService) *StatusHandler {
	return &StatusHandler{statusSvc: statusSvc}
}

// PostStatus 发布状态动态，24 小时后自然过期
func (s *StatusHandler) PostStatus(c *gin.Context) {
	var req dto.PostStatusReq
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	sender := c.GetString("participant_key")
	status, err := s.statusSvc.PostStatus(c.Request.Context(), sender, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

// ListStatuses 所有未过期状态，最新在前
func (s *StatusHandler) ListStatuses(c *gin.Context) {
	statuses, err := s.statusSvc.ListStatuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}
