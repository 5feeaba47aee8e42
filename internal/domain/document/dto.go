package document

type CreateDocumentDTO struct {
	Title           string  `form:"title" binding:"required"`
	ProjectID       uint    `form:"project_id" binding:"required"`
	ReferenceNumber string  `form:"reference_number" binding:"required"`
	DocumentType    string  `form:"document_type" binding:"required"`
	Description     *string `form:"description,omitempty"`
}

// CreateReplyDTO carries only the fields a reply supplies itself;
// project, reference number and type are snapshotted from the parent.
type CreateReplyDTO struct {
	Title       string  `form:"title" binding:"required"`
	Description *string `form:"description,omitempty"`
}

type UpdateDocumentDTO struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
	Status          *Status `json:"status,omitempty"`
}

type UpdateStatusDTO struct {
	Status Status  `json:"status" binding:"required"`
	Reason *string `json:"reason,omitempty"`
}

type CommentInputDTO struct {
	Content string `json:"content" binding:"required"`
}

// SearchQuery filters are conjunctive; zero values mean "no filter".
type SearchQuery struct {
	Title           string `form:"title"`
	ProjectID       *uint  `form:"project_id"`
	ReferenceNumber string `form:"reference_number"`
	DocumentType    string `form:"document_type"`
	Status          string `form:"status"`
}
