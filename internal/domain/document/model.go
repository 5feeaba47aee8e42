package document

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is one of the three decision states.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// FileItem references externally stored binary content.
type FileItem struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Comment is a timestamped note owned by its author. Replies nest
// further comments; they are append-only and not addressable by index.
type Comment struct {
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Replies   []Comment `json:"replies"`
}

// Document is a titled record of uploaded material tied to a project,
// optionally replying to another document. The embedded lists
// (file_items, comments, signed_by) live in JSON columns on the row so
// a document is always read and written as a single record.
type Document struct {
	DID              uint                            `gorm:"primaryKey;column:d_id;autoIncrement" json:"id"`
	Title            string                          `gorm:"size:200;not null" json:"title"`
	ProjectID        uint                            `gorm:"not null;index" json:"project_id"`
	ReferenceNumber  string                          `gorm:"size:100;not null;index:uq_documents_root_reference,unique,where:parent_document_id IS NULL" json:"reference_number"`
	DocumentType     string                          `gorm:"size:50;not null;index" json:"document_type"`
	Description      *string                         `gorm:"type:text" json:"description,omitempty"`
	ParentDocumentID *uint                           `gorm:"index" json:"parent_document_id,omitempty"`
	UploadedBy       uint                            `gorm:"not null" json:"uploaded_by"`
	Status           Status                          `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SignedBy         datatypes.JSONSlice[uint]       `json:"signed_by"`
	FileItems        datatypes.JSONSlice[FileItem]   `json:"file_items"`
	Comments         datatypes.JSONSlice[Comment]    `json:"comments"`
	CreatedAt        time.Time                       `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                       `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

// IsReply reports whether the document was created as a reply.
func (d *Document) IsReply() bool {
	return d.ParentDocumentID != nil
}

// SignedByUser reports whether uid already signed the document.
func (d *Document) SignedByUser(uid uint) bool {
	for _, id := range d.SignedBy {
		if id == uid {
			return true
		}
	}
	return false
}
