package application

import (
	"github.com/ministryworks/dms-go/internal/domain/notification"
	"github.com/ministryworks/dms-go/internal/repository"
)

// NotificationService is the read side of the fan-out: listing,
// unread counts and read receipts for a single user's feed.
type NotificationService struct {
	Repos *repository.Repos
}

func NewNotificationService(repos *repository.Repos) *NotificationService {
	return &NotificationService{Repos: repos}
}

func (s *NotificationService) ListMine(userID uint) ([]notification.Notification, error) {
	return s.Repos.Notification.ListByUser(userID)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.Repos.Notification.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.Repos.Notification.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repos.Notification.MarkAllRead(userID)
}
