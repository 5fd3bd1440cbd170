package api

import (
	"Ripple/internal/api/middleware"
	"Ripple/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// WebSocket 入口，身份由连接后的 register 事件声明
		apiGroup.GET("/im", group.WSHandler.Connect)

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("/:id", group.UserHandler.GetParticipant)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/self/info", group.UserHandler.GetSelf)
				authGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		chatGroup := apiGroup.Group("/chat")
		chatGroup.Use(middleware.AuthMiddleware())
		{
			chatGroup.GET("/list", group.ChatHandler.GetChatList)
			chatGroup.GET("/history", group.ChatHandler.GetChatHistory)
		}

		groupGroup := apiGroup.Group("/group")
		groupGroup.Use(middleware.AuthMiddleware())
		{
			groupGroup.POST("", group.GroupHandler.CreateGroup)
			groupGroup.GET("/:group_id", group.GroupHandler.GetGroup)
			groupGroup.GET("/:group_id/members", group.GroupHandler.ListMembers)
		}

		statusGroup := apiGroup.Group("/status")
		statusGroup.Use(middleware.AuthMiddleware())
		{
			statusGroup.POST("", group.StatusHandler.PostStatus)
			statusGroup.GET("", group.StatusHandler.ListStatuses)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
