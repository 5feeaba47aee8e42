package db

import (
	"fmt"
	"log"

	"github.com/ministryworks/dms-go/internal/config"
	"github.com/ministryworks/dms-go/internal/domain/approval"
	"github.com/ministryworks/dms-go/internal/domain/audit"
	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/internal/domain/notification"
	"github.com/ministryworks/dms-go/internal/domain/project"
	"github.com/ministryworks/dms-go/internal/domain/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate applies the schema for every persisted entity.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&user.User{},
		&project.Project{},
		&document.Document{},
		&approval.Approval{},
		&notification.Notification{},
		&audit.AuditLog{},
	)
}

// InitWithGormDB swaps in an externally constructed DB, used by tests.
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
