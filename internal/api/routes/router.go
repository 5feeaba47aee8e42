package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ministryworks/dms-go/internal/api/handlers"
	"github.com/ministryworks/dms-go/internal/api/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/notifications", h.WS.Notifications)

		documents := auth.Group("/documents")
		{
			documents.POST("", h.Document.CreateDocument)
			documents.GET("", h.Document.SearchDocuments)
			documents.GET("/:id", h.Document.GetDocument)
			documents.PUT("/:id", middleware.Approver(), h.Document.UpdateDocument)
			documents.DELETE("/:id", middleware.Admin(), h.Document.DeleteDocument)

			documents.GET("/:id/status", h.Document.GetStatus)
			documents.PATCH("/:id/status", middleware.Approver(), h.Document.UpdateStatus)
			documents.POST("/:id/sign", h.Document.SignDocument)
			documents.GET("/:id/approvals", h.Document.ListApprovals)

			documents.POST("/:id/replies", h.Document.CreateReply)
			documents.GET("/:id/replies", h.Document.GetReplies)

			documents.PUT("/:id/files/:index", h.Document.ReplaceAttachment)

			documents.GET("/:id/comments", h.Document.ListComments)
			documents.POST("/:id/comments", h.Document.AddComment)
			documents.PUT("/:id/comments/:index", h.Document.EditComment)
			documents.DELETE("/:id/comments/:index", h.Document.DeleteComment)
			documents.POST("/:id/comments/:index/replies", h.Document.ReplyComment)
		}

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Project.GetProjects)
			projects.GET("/:id", h.Project.GetProject)
			projects.POST("", middleware.Admin(), h.Project.CreateProject)
			projects.PUT("/:id", middleware.Admin(), h.Project.UpdateProject)
			projects.DELETE("/:id", middleware.Admin(), h.Project.DeleteProject)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.GET("/unread", h.Notification.CountUnread)
			notifications.POST("/read-all", h.Notification.MarkAllRead)
			notifications.POST("/:id/read", h.Notification.MarkRead)
		}

		users := auth.Group("/users")
		{
			users.GET("", h.User.GetUsers)
			users.GET("/:id", h.User.GetUser)
			users.PUT("/:id", middleware.UserOrAdmin(), h.User.UpdateUser)
			users.POST("/:id/upload-profile", middleware.UserOrAdmin(), h.User.UploadProfile)
			users.DELETE("/:id", middleware.Admin(), h.User.DeleteUser)
		}

		audit := auth.Group("/audit/logs")
		{
			audit.GET("", middleware.Admin(), h.Audit.GetAuditLogs)
		}
	}
}
