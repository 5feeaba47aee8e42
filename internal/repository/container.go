package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	Document     DocumentRepo
	User         UserRepo
	Project      ProjectRepo
	Notification NotificationRepo
	Approval     ApprovalRepo
	Audit        AuditRepo

	db *gorm.DB
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		Document:     NewDocumentRepo(db),
		User:         NewUserRepo(db),
		Project:      NewProjectRepo(db),
		Notification: NewNotificationRepo(db),
		Approval:     NewApprovalRepo(db),
		Audit:        NewAuditRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Document:     r.Document.WithTx(tx),
		User:         r.User.WithTx(tx),
		Project:      r.Project.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		Approval:     r.Approval.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn against a transactional copy of the container.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
