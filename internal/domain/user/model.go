package user

import "time"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCommissioner Role = "commissioner"
	RoleStaff        Role = "staff"
)

type User struct {
	UID           uint      `gorm:"primaryKey;column:u_id;autoIncrement" json:"id"`
	Email         string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	FirstName     string    `gorm:"size:50;not null" json:"first_name"`
	LastName      string    `gorm:"size:50;not null" json:"last_name"`
	Role          string    `gorm:"size:20;not null;default:'staff'" json:"role"`
	ProfileImage  *string   `gorm:"size:300" json:"profile_image,omitempty"`
	ExpoPushToken *string   `gorm:"size:100" json:"expo_push_token,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
