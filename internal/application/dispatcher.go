package application

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ministryworks/dms-go/internal/domain/notification"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/pkg/notify"
)

type Event string

const (
	EventDocumentCreated      Event = "document_created"
	EventDocumentReplyCreated Event = "document_reply_created"
	EventCommentAdded         Event = "comment_added"
)

// Dispatcher fans a lifecycle event out to interested users. Dispatch
// is fire-and-forget: it never blocks the caller and never surfaces
// delivery failures to it.
type Dispatcher interface {
	Dispatch(kind Event, message string)
}

type NotificationDispatcher struct {
	repos *repository.Repos
	email notify.EmailSender
	push  notify.PushSender
	hub   *notify.Hub
}

func NewNotificationDispatcher(repos *repository.Repos, email notify.EmailSender, push notify.PushSender, hub *notify.Hub) *NotificationDispatcher {
	return &NotificationDispatcher{
		repos: repos,
		email: email,
		push:  push,
		hub:   hub,
	}
}

func (d *NotificationDispatcher) Dispatch(kind Event, message string) {
	go d.deliver(kind, message)
}

func (d *NotificationDispatcher) deliver(kind Event, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := d.repos.User.List()
	if err != nil {
		log.Printf("notification fan-out aborted, cannot list users: %v", err)
		return
	}

	rows := make([]notification.Notification, 0, len(users))
	var emails []string
	var tokens []string
	for _, u := range users {
		rows = append(rows, notification.Notification{
			UserID:  u.UID,
			Kind:    string(kind),
			Message: message,
		})
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
		if u.ExpoPushToken != nil && *u.ExpoPushToken != "" {
			tokens = append(tokens, *u.ExpoPushToken)
		}
	}

	if err := d.repos.Notification.CreateBatch(rows); err != nil {
		log.Printf("failed to persist notifications: %v", err)
	}

	if d.email != nil {
		if err := d.email.Send(ctx, emails, "New Document Notification", message); err != nil {
			log.Printf("failed to send email notification: %v", err)
		}
	}

	if d.push != nil {
		if err := d.push.Send(ctx, tokens, "New Document Alert", message); err != nil {
			log.Printf("failed to send push notification: %v", err)
		}
	}

	if d.hub != nil {
		payload, err := json.Marshal(map[string]string{
			"kind":    string(kind),
			"message": message,
		})
		if err == nil {
			d.hub.Broadcast(payload)
		}
	}
}
