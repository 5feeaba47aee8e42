package application

import (
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/pkg/storage"
)

// Services bundles the application layer for injection into handlers.
type Services struct {
	Document     *DocumentService
	Comment      *CommentService
	User         *UserService
	Project      *ProjectService
	Notification *NotificationService
	Audit        *AuditService
}

// New wires every service against the same repositories and a shared
// per-document lock table, so comment and attachment mutations on one
// document serialize across services.
func New(repos *repository.Repos, store storage.Store, dispatcher Dispatcher) *Services {
	locks := newDocLocks()
	audit := NewAuditService(repos)

	return &Services{
		Document:     NewDocumentService(repos, store, dispatcher, audit, locks),
		Comment:      NewCommentService(repos, dispatcher, audit, locks),
		User:         NewUserService(repos, store, audit),
		Project:      NewProjectService(repos, audit),
		Notification: NewNotificationService(repos),
		Audit:        audit,
	}
}
