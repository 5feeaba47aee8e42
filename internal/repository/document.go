package repository

import (
	"strings"

	"github.com/ministryworks/dms-go/internal/domain/document"
	"gorm.io/gorm"
)

type DocumentRepo interface {
	Insert(doc *document.Document) error
	GetByID(id uint) (*document.Document, error)
	ListByParent(parentID uint) ([]document.Document, error)
	Search(q document.SearchQuery) ([]document.Document, error)
	RootReferenceExists(ref string, excludeID uint) (bool, error)
	Update(doc *document.Document) error
	Delete(id uint) (bool, error)
	WithTx(tx *gorm.DB) DocumentRepo
}

type DBDocumentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) *DBDocumentRepo {
	return &DBDocumentRepo{db: db}
}

func (r *DBDocumentRepo) Insert(doc *document.Document) error {
	return r.db.Create(doc).Error
}

func (r *DBDocumentRepo) GetByID(id uint) (*document.Document, error) {
	var doc document.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DBDocumentRepo) ListByParent(parentID uint) ([]document.Document, error) {
	var docs []document.Document
	err := r.db.Where("parent_document_id = ?", parentID).Order("d_id").Find(&docs).Error
	return docs, err
}

// Search applies the optional filters conjunctively. Title matches as a
// case-insensitive substring; LOWER/LIKE keeps the query portable across
// postgres and sqlite.
func (r *DBDocumentRepo) Search(q document.SearchQuery) ([]document.Document, error) {
	query := r.db.Model(&document.Document{})

	if q.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Title)+"%")
	}
	if q.ProjectID != nil {
		query = query.Where("project_id = ?", *q.ProjectID)
	}
	if q.ReferenceNumber != "" {
		query = query.Where("reference_number = ?", q.ReferenceNumber)
	}
	if q.DocumentType != "" {
		query = query.Where("document_type = ?", q.DocumentType)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var docs []document.Document
	err := query.Order("d_id").Find(&docs).Error
	return docs, err
}

// RootReferenceExists reports whether another root document already
// carries ref. Replies are excluded: they share the parent's reference
// number, so the column cannot carry a plain unique index.
func (r *DBDocumentRepo) RootReferenceExists(ref string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&document.Document{}).
		Where("reference_number = ? AND parent_document_id IS NULL", ref)
	if excludeID != 0 {
		query = query.Where("d_id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DBDocumentRepo) Update(doc *document.Document) error {
	return r.db.Save(doc).Error
}

func (r *DBDocumentRepo) Delete(id uint) (bool, error) {
	res := r.db.Delete(&document.Document{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DBDocumentRepo) WithTx(tx *gorm.DB) DocumentRepo {
	if tx == nil {
		return r
	}
	return &DBDocumentRepo{db: tx}
}
