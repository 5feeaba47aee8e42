package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ministryworks/dms-go/internal/application"
	"github.com/ministryworks/dms-go/pkg/notify"
)

type Handlers struct {
	Document     *DocumentHandler
	User         *UserHandler
	Project      *ProjectHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	WS           *WSHandler
	Router       *gin.Engine
}

func New(svc *application.Services, hub *notify.Hub, router *gin.Engine) *Handlers {
	return &Handlers{
		Document:     NewDocumentHandler(svc.Document, svc.Comment),
		User:         NewUserHandler(svc.User),
		Project:      NewProjectHandler(svc.Project),
		Notification: NewNotificationHandler(svc.Notification),
		Audit:        NewAuditHandler(svc.Audit),
		WS:           NewWSHandler(hub),
		Router:       router,
	}
}
