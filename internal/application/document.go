package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ministryworks/dms-go/internal/domain/approval"
	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/pkg/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileUpload is one inbound file taken off a multipart request.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type DocumentService struct {
	Repos      *repository.Repos
	store      storage.Store
	dispatcher Dispatcher
	audit      *AuditService
	locks      *docLocks
}

func NewDocumentService(repos *repository.Repos, store storage.Store, dispatcher Dispatcher, audit *AuditService, locks *docLocks) *DocumentService {
	return &DocumentService{
		Repos:      repos,
		store:      store,
		dispatcher: dispatcher,
		audit:      audit,
		locks:      locks,
	}
}

// CreateDocument uploads every file, persists the document and fans
// out a DocumentCreated event. Any single failed upload fails the
// whole operation; no partial-attachment documents are written.
func (s *DocumentService) CreateDocument(ctx context.Context, actorID uint, input document.CreateDocumentDTO, files []FileUpload) (*document.Document, error) {
	taken, err := s.Repos.Document.RootReferenceExists(input.ReferenceNumber, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, input.ReferenceNumber)
	}

	items, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	// A cancelled request must not leave a repository record behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &document.Document{
		Title:           input.Title,
		ProjectID:       input.ProjectID,
		ReferenceNumber: input.ReferenceNumber,
		DocumentType:    input.DocumentType,
		Description:     input.Description,
		UploadedBy:      actorID,
		Status:          document.StatusPending,
		SignedBy:        datatypes.NewJSONSlice([]uint{}),
		FileItems:       datatypes.NewJSONSlice(items),
		Comments:        datatypes.NewJSONSlice([]document.Comment{}),
	}

	// The partial unique index on root reference numbers backs the
	// pre-check above: two concurrent creates both passing it still
	// cannot both insert.
	if err := s.Repos.Document.Insert(doc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, doc.ReferenceNumber)
		}
		return nil, err
	}

	s.audit.Record(actorID, "create", "document", doc.DID, nil, doc)
	s.dispatcher.Dispatch(EventDocumentCreated, fmt.Sprintf("New document uploaded: %s", doc.Title))
	return doc, nil
}

// CreateReply creates a document replying to parentID. The parent's
// project, reference number and type are snapshotted at call time and
// never re-synced.
func (s *DocumentService) CreateReply(ctx context.Context, actorID, parentID uint, input document.CreateReplyDTO, files []FileUpload) (*document.Document, error) {
	parent, err := s.Repos.Document.GetByID(parentID)
	if err != nil {
		return nil, asDocumentErr(err)
	}

	items, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pid := parent.DID
	reply := &document.Document{
		Title:            input.Title,
		ProjectID:        parent.ProjectID,
		ReferenceNumber:  parent.ReferenceNumber,
		DocumentType:     parent.DocumentType,
		Description:      input.Description,
		ParentDocumentID: &pid,
		UploadedBy:       actorID,
		Status:           document.StatusPending,
		SignedBy:         datatypes.NewJSONSlice([]uint{}),
		FileItems:        datatypes.NewJSONSlice(items),
		Comments:         datatypes.NewJSONSlice([]document.Comment{}),
	}

	if err := s.Repos.Document.Insert(reply); err != nil {
		return nil, err
	}

	s.audit.Record(actorID, "create", "document", reply.DID, nil, reply)
	s.dispatcher.Dispatch(EventDocumentReplyCreated, fmt.Sprintf("Document reply uploaded: %s", reply.Title))
	return reply, nil
}

func (s *DocumentService) GetDocument(id uint) (*document.Document, error) {
	doc, err := s.Repos.Document.GetByID(id)
	if err != nil {
		return nil, asDocumentErr(err)
	}
	return doc, nil
}

func (s *DocumentService) GetStatus(id uint) (document.Status, error) {
	doc, err := s.GetDocument(id)
	if err != nil {
		return "", err
	}
	return doc.Status, nil
}

// GetReplies returns the documents replying to id, in creation order.
func (s *DocumentService) GetReplies(id uint) ([]document.Document, error) {
	return s.Repos.Document.ListByParent(id)
}

func (s *DocumentService) Search(q document.SearchQuery) ([]document.Document, error) {
	return s.Repos.Document.Search(q)
}

// UpdateDocument applies the non-nil patch fields. The caller must
// already be authorized; the service only validates the payload.
func (s *DocumentService) UpdateDocument(actorID, id uint, input document.UpdateDocumentDTO) (*document.Document, error) {
	if input.Status != nil && !document.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *input.Status)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var updated *document.Document
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(id)
		if err != nil {
			return asDocumentErr(err)
		}
		old := *doc

		if input.Title != nil {
			doc.Title = *input.Title
		}
		if input.Description != nil {
			doc.Description = input.Description
		}
		if input.ReferenceNumber != nil && *input.ReferenceNumber != doc.ReferenceNumber {
			if !doc.IsReply() {
				taken, err := tx.Document.RootReferenceExists(*input.ReferenceNumber, doc.DID)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("%w: %s", ErrDuplicateReference, *input.ReferenceNumber)
				}
			}
			doc.ReferenceNumber = *input.ReferenceNumber
		}
		if input.Status != nil {
			doc.Status = *input.Status
		}

		if err := tx.Document.Update(doc); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateReference, doc.ReferenceNumber)
			}
			return err
		}

		updated = doc
		s.audit.Record(actorID, "update", "document", doc.DID, old, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus sets the decision state and records an approval entry.
// Transitions are deliberately unconstrained beyond the enum: an
// authorized actor may move a document between any two states.
func (s *DocumentService) UpdateStatus(actorID, id uint, input document.UpdateStatusDTO) (*document.Document, error) {
	if !document.ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, input.Status)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var updated *document.Document
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(id)
		if err != nil {
			return asDocumentErr(err)
		}
		old := *doc

		doc.Status = input.Status
		if err := tx.Document.Update(doc); err != nil {
			return err
		}

		if err := tx.Approval.Create(&approval.Approval{
			DocumentID: doc.DID,
			Status:     string(input.Status),
			Reason:     input.Reason,
			ApprovedBy: actorID,
		}); err != nil {
			return err
		}

		updated = doc
		s.audit.Record(actorID, "update_status", "document", doc.DID, old, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Sign appends the actor to the document's signer set. Signing twice
// is a no-op; the set never shrinks.
func (s *DocumentService) Sign(actorID, id uint) (*document.Document, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var updated *document.Document
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(id)
		if err != nil {
			return asDocumentErr(err)
		}

		if !doc.SignedByUser(actorID) {
			doc.SignedBy = append(doc.SignedBy, actorID)
			if err := tx.Document.Update(doc); err != nil {
				return err
			}
			s.audit.Record(actorID, "sign", "document", doc.DID, nil, doc.SignedBy)
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReplaceAttachment uploads the new file and swaps the item at index
// in place. The index is validated again under the document lock so a
// concurrent mutation cannot corrupt an adjacent entry; an upload made
// for an index that went stale is an accepted orphan (no two-phase
// commit against the object store).
func (s *DocumentService) ReplaceAttachment(ctx context.Context, actorID, id uint, index int, file FileUpload) (*document.Document, error) {
	doc, err := s.Repos.Document.GetByID(id)
	if err != nil {
		return nil, asDocumentErr(err)
	}
	if index < 0 || index >= len(doc.FileItems) {
		return nil, fmt.Errorf("%w: index %d, %d attachments", ErrIndexOutOfRange, index, len(doc.FileItems))
	}

	url, err := s.store.Upload(ctx, file.Reader, file.Size, file.Name, "documents", file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	var updated *document.Document
	var oldURL string
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(id)
		if err != nil {
			return asDocumentErr(err)
		}
		if index >= len(doc.FileItems) {
			return fmt.Errorf("%w: index %d, %d attachments", ErrIndexOutOfRange, index, len(doc.FileItems))
		}

		old := doc.FileItems[index]
		oldURL = old.URL
		doc.FileItems[index] = document.FileItem{URL: url, Name: file.Name}
		if err := tx.Document.Update(doc); err != nil {
			return err
		}

		updated = doc
		s.audit.Record(actorID, "replace_attachment", "document", doc.DID, old, doc.FileItems[index])
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort cleanup of the replaced object.
	if oldURL != "" {
		if err := s.store.Delete(ctx, oldURL); err != nil {
			log.Printf("Failed to delete replaced attachment %s: %v", oldURL, err)
		}
	}
	return updated, nil
}

// DeleteDocument removes the record. Replies keep their
// parent_document_id and stored objects are left in place; neither is
// cascaded.
func (s *DocumentService) DeleteDocument(actorID, id uint) error {
	doc, err := s.Repos.Document.GetByID(id)
	if err != nil {
		return asDocumentErr(err)
	}

	removed, err := s.Repos.Document.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrDocumentNotFound
	}

	s.audit.Record(actorID, "delete", "document", doc.DID, doc, nil)
	return nil
}

// ListApprovals returns the decision log for a document.
func (s *DocumentService) ListApprovals(id uint) ([]approval.Approval, error) {
	if _, err := s.Repos.Document.GetByID(id); err != nil {
		return nil, asDocumentErr(err)
	}
	return s.Repos.Approval.ListByDocument(id)
}

func (s *DocumentService) uploadAll(ctx context.Context, files []FileUpload) ([]document.FileItem, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", ErrValidation)
	}

	items := make([]document.FileItem, 0, len(files))
	for _, f := range files {
		url, err := s.store.Upload(ctx, f.Reader, f.Size, f.Name, "documents", f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUploadFailed, err)
		}
		items = append(items, document.FileItem{URL: url, Name: f.Name})
	}
	return items, nil
}

func asDocumentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	return err
}
