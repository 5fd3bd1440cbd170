package api

import "Ripple/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler   *handler.UserHandler
	ChatHandler   *handler.ChatHandler
	GroupHandler  *handler.GroupHandler
	StatusHandler *handler.StatusHandler
	MediaHandler  *handler.MediaHandler
	WSHandler     *handler.WsHandler
}
