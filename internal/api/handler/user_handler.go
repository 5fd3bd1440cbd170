package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 注册或更新参与者资料，重复手机号视为资料更新
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterParticipantReq
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	participant, token, err := s.userSvc.RegisterOrUpdate(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]interface{}{
		"participant": participant,
		"token":       token,
	})
}

// GetParticipant 按原始或归一化标识查询参与者
func (s *UserHandler) GetParticipant(c *gin.Context) {
	rawID := c.Param("id")
	if rawID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	participant, err := s.userSvc.GetByKey(c.Request.Context(), rawID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participant)
}

// Logout 注销当前令牌，后续请求需重新注册换取新令牌
func (s *UserHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), tokenString); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetSelf 返回当前登录参与者的资料
func (s *UserHandler) GetSelf(c *gin.Context) {
	participantKey := c.GetString("participant_key")
	participant, err := s.userSvc.GetByKey(c.Request.Context(), participantKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participant)
}
