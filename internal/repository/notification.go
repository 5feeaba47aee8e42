package repository

import (
	"time"

	"github.com/ministryworks/dms-go/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	CreateBatch(rows []notification.Notification) error
	ListByUser(userID uint) ([]notification.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{db: db}
}

func (r *DBNotificationRepo) CreateBatch(rows []notification.Notification) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *DBNotificationRepo) ListByUser(userID uint) ([]notification.Notification, error) {
	var rows []notification.Notification
	err := r.db.Where("user_id = ?", userID).Order("create_at DESC").Find(&rows).Error
	return rows, err
}

func (r *DBNotificationRepo) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *DBNotificationRepo) MarkRead(id, userID uint) error {
	now := time.Now()
	return r.db.Model(&notification.Notification{}).
		Where("n_id = ? AND user_id = ?", id, userID).
		Update("read_at", now).Error
}

func (r *DBNotificationRepo) MarkAllRead(userID uint) error {
	now := time.Now()
	return r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{db: tx}
}
