package application

import (
	"fmt"
	"time"

	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/internal/repository"
)

// CommentService mutates the comment thread embedded in a document.
// Comments and replies are addressed by position, so every mutation
// re-reads the document under its lock before touching the slice.
type CommentService struct {
	Repos      *repository.Repos
	dispatcher Dispatcher
	audit      *AuditService
	locks      *docLocks
}

func NewCommentService(repos *repository.Repos, dispatcher Dispatcher, audit *AuditService, locks *docLocks) *CommentService {
	return &CommentService{
		Repos:      repos,
		dispatcher: dispatcher,
		audit:      audit,
		locks:      locks,
	}
}

func (s *CommentService) List(docID uint) ([]document.Comment, error) {
	doc, err := s.Repos.Document.GetByID(docID)
	if err != nil {
		return nil, asDocumentErr(err)
	}
	return doc.Comments, nil
}

// Add appends a comment authored by actorID and returns its index.
func (s *CommentService) Add(actorID, docID uint, input document.CommentInputDTO) (int, error) {
	unlock := s.locks.Lock(docID)
	defer unlock()

	var index int
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(docID)
		if err != nil {
			return asDocumentErr(err)
		}

		doc.Comments = append(doc.Comments, document.Comment{
			UserID:    actorID,
			Content:   input.Content,
			Timestamp: time.Now().UTC(),
		})
		index = len(doc.Comments) - 1

		return tx.Document.Update(doc)
	})
	if err != nil {
		return 0, err
	}

	s.audit.Record(actorID, "add_comment", "document", docID, nil, input.Content)
	s.dispatcher.Dispatch(EventCommentAdded, fmt.Sprintf("New comment on document %d", docID))
	return index, nil
}

// Edit rewrites the comment body at index. Only the author may edit;
// the original timestamp and any replies are kept.
func (s *CommentService) Edit(actorID, docID uint, index int, input document.CommentInputDTO) (*document.Comment, error) {
	unlock := s.locks.Lock(docID)
	defer unlock()

	var edited document.Comment
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(docID)
		if err != nil {
			return asDocumentErr(err)
		}
		if index < 0 || index >= len(doc.Comments) {
			return fmt.Errorf("%w: comment %d", ErrCommentNotFound, index)
		}
		if doc.Comments[index].UserID != actorID {
			return ErrForbidden
		}

		doc.Comments[index].Content = input.Content
		edited = doc.Comments[index]

		return tx.Document.Update(doc)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actorID, "edit_comment", "document", docID, nil, input.Content)
	return &edited, nil
}

// Delete removes the comment at index. Later comments shift down one
// position, so indices held by concurrent callers go stale.
func (s *CommentService) Delete(actorID, docID uint, index int) error {
	unlock := s.locks.Lock(docID)
	defer unlock()

	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(docID)
		if err != nil {
			return asDocumentErr(err)
		}
		if index < 0 || index >= len(doc.Comments) {
			return fmt.Errorf("%w: comment %d", ErrCommentNotFound, index)
		}
		if doc.Comments[index].UserID != actorID {
			return ErrForbidden
		}

		doc.Comments = append(doc.Comments[:index], doc.Comments[index+1:]...)
		return tx.Document.Update(doc)
	})
	if err != nil {
		return err
	}

	s.audit.Record(actorID, "delete_comment", "document", docID, index, nil)
	return nil
}

// AddReply appends a nested reply to the comment at index. Replies
// are append-only; there is no edit or delete for them.
func (s *CommentService) AddReply(actorID, docID uint, index int, input document.CommentInputDTO) (*document.Comment, error) {
	unlock := s.locks.Lock(docID)
	defer unlock()

	var reply document.Comment
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		doc, err := tx.Document.GetByID(docID)
		if err != nil {
			return asDocumentErr(err)
		}
		if index < 0 || index >= len(doc.Comments) {
			return fmt.Errorf("%w: comment %d", ErrCommentNotFound, index)
		}

		reply = document.Comment{
			UserID:    actorID,
			Content:   input.Content,
			Timestamp: time.Now().UTC(),
		}
		doc.Comments[index].Replies = append(doc.Comments[index].Replies, reply)

		return tx.Document.Update(doc)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actorID, "reply_comment", "document", docID, nil, input.Content)
	return &reply, nil
}
