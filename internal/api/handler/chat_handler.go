package handler

import (
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// GetChatHistory 拉取会话历史，chat_id 接受原始形态，内部统一规范化
func (s *ChatHandler) GetChatHistory(c *gin.Context) {
	chatID := c.Query("chat_id")
	if chatID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := s.chatSvc.GetChatHistory(c.Request.Context(), chatID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// GetChatList 当前参与者的会话列表，部分失败以 degraded 字段标注
func (s *ChatHandler) GetChatList(c *gin.Context) {
	participantKey := c.GetString("participant_key")
	result, err := s.chatSvc.GetChatList(c.Request.Context(), participantKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
