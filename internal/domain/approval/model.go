package approval

import "time"

// Approval records a single status decision on a document. It is a
// decision log entry, not a workflow step.
type Approval struct {
	AID        uint      `gorm:"primaryKey;column:a_id;autoIncrement" json:"id"`
	DocumentID uint      `gorm:"not null;index" json:"document_id"`
	Status     string    `gorm:"size:20;not null" json:"status"`
	Reason     *string   `gorm:"type:text" json:"reason,omitempty"`
	ApprovedBy uint      `gorm:"not null;index" json:"approved_by"`
	CreatedAt  time.Time `gorm:"column:create_at;autoCreateTime" json:"timestamp"`
}

func (Approval) TableName() string {
	return "approvals"
}
