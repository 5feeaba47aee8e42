package notification

import "time"

// Notification is one delivered event for one user. Rows are written by
// the dispatcher fan-out and read back through the read/unread endpoints.
type Notification struct {
	NID       uint       `gorm:"primaryKey;column:n_id;autoIncrement" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Kind      string     `gorm:"size:50;not null" json:"kind"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:create_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
