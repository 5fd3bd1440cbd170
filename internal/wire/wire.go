package wire

import (
	"Ripple/internal/api"
	"Ripple/internal/api/config"
	"Ripple/internal/api/handler"
	"Ripple/internal/realtime"
	"Ripple/internal/repository"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Hub    *realtime.Hub
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	participantRepo := repository.NewParticipantRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	statusRepo := repository.NewStatusRepo(db)

	hub := realtime.NewHub()
	emitter := realtime.NewRedisEmitter(cfg.Realtime.EventChannel)

	userService := service.NewUserService(participantRepo)
	chatService := service.NewChatService(messageRepo, groupRepo, emitter)
	groupService := service.NewGroupService(groupRepo, participantRepo, emitter)
	statusService := service.NewStatusService(statusRepo, emitter)
	callService := service.NewCallService(groupRepo, emitter)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		ChatHandler:   handler.NewChatHandler(chatService),
		GroupHandler:  handler.NewGroupHandler(groupService),
		StatusHandler: handler.NewStatusHandler(statusService),
		MediaHandler:  handler.NewMediaHandler(),
		WSHandler:     handler.NewWsHandler(hub, chatService, groupService, callService, cfg.Realtime.SendBuffer),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
		Hub:    hub,
	}, nil
}
