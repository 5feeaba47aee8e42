package repository

import (
	"github.com/ministryworks/dms-go/internal/domain/project"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(p *project.Project) error
	GetByID(id uint) (*project.Project, error)
	List() ([]project.Project, error)
	Update(p *project.Project) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{db: db}
}

func (r *DBProjectRepo) Create(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *DBProjectRepo) GetByID(id uint) (*project.Project, error) {
	var p project.Project
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DBProjectRepo) List() ([]project.Project, error) {
	var projects []project.Project
	err := r.db.Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) Update(p *project.Project) error {
	return r.db.Save(p).Error
}

func (r *DBProjectRepo) Delete(id uint) error {
	return r.db.Delete(&project.Project{}, id).Error
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{db: tx}
}
