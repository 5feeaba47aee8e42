package application

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ministryworks/dms-go/internal/domain/audit"
	"github.com/ministryworks/dms-go/internal/repository"
)

// AuditService writes the mutation trail. Recording is best-effort:
// a failed audit insert is logged and never fails the operation that
// produced it.
type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{Repos: repos}
}

func (s *AuditService) Record(actorID uint, action, resourceType string, resourceID uint, oldData, newData interface{}) {
	entry := &audit.AuditLog{
		UserID:       actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   fmt.Sprintf("%d", resourceID),
		Description:  fmt.Sprintf("%s %s %d", action, resourceType, resourceID),
	}
	if oldData != nil {
		if raw, err := json.Marshal(oldData); err == nil {
			entry.OldData = raw
		}
	}
	if newData != nil {
		if raw, err := json.Marshal(newData); err == nil {
			entry.NewData = raw
		}
	}

	if err := s.Repos.Audit.CreateAuditLog(entry); err != nil {
		log.Printf("Failed to write audit log for %s %s %d: %v", action, resourceType, resourceID, err)
	}
}

func (s *AuditService) List(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	return s.Repos.Audit.GetAuditLogs(params)
}
