package repository

import (
	"github.com/ministryworks/dms-go/internal/domain/approval"
	"gorm.io/gorm"
)

type ApprovalRepo interface {
	Create(a *approval.Approval) error
	ListByDocument(documentID uint) ([]approval.Approval, error)
	WithTx(tx *gorm.DB) ApprovalRepo
}

type DBApprovalRepo struct {
	db *gorm.DB
}

func NewApprovalRepo(db *gorm.DB) *DBApprovalRepo {
	return &DBApprovalRepo{db: db}
}

func (r *DBApprovalRepo) Create(a *approval.Approval) error {
	return r.db.Create(a).Error
}

func (r *DBApprovalRepo) ListByDocument(documentID uint) ([]approval.Approval, error) {
	var rows []approval.Approval
	err := r.db.Where("document_id = ?", documentID).Order("a_id").Find(&rows).Error
	return rows, err
}

func (r *DBApprovalRepo) WithTx(tx *gorm.DB) ApprovalRepo {
	if tx == nil {
		return r
	}
	return &DBApprovalRepo{db: tx}
}
