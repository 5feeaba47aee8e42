package application

import (
	"errors"

	"github.com/ministryworks/dms-go/internal/domain/project"
	"github.com/ministryworks/dms-go/internal/repository"
	"gorm.io/gorm"
)

type ProjectService struct {
	Repos *repository.Repos
	audit *AuditService
}

func NewProjectService(repos *repository.Repos, audit *AuditService) *ProjectService {
	return &ProjectService{Repos: repos, audit: audit}
}

func (s *ProjectService) Create(actorID uint, input project.CreateProjectDTO) (*project.Project, error) {
	p := &project.Project{
		ProjectName:              input.ProjectName,
		Contractor:               input.Contractor,
		ResidentEngineer:         input.ResidentEngineer,
		ProgressReport:           input.ProgressReport,
		ProjectTags:              input.ProjectTags,
		AwardDate:                input.AwardDate,
		ContractSum:              input.ContractSum,
		Duration:                 input.Duration,
		MobilisationPaid:         input.MobilisationPaid,
		InterimCertificateEarned: input.InterimCertificateEarned,
		Remark:                   input.Remark,
		CreatedBy:                actorID,
	}
	if err := s.Repos.Project.Create(p); err != nil {
		return nil, err
	}
	s.audit.Record(actorID, "create", "project", p.PID, nil, p)
	return p, nil
}

func (s *ProjectService) Get(id uint) (*project.Project, error) {
	p, err := s.Repos.Project.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) List() ([]project.Project, error) {
	return s.Repos.Project.List()
}

func (s *ProjectService) Update(actorID, id uint, input project.UpdateProjectDTO) (*project.Project, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	old := *p

	if input.ProjectName != nil {
		p.ProjectName = *input.ProjectName
	}
	if input.Contractor != nil {
		p.Contractor = input.Contractor
	}
	if input.ResidentEngineer != nil {
		p.ResidentEngineer = input.ResidentEngineer
	}
	if input.ProgressReport != nil {
		p.ProgressReport = input.ProgressReport
	}
	if input.ProjectTags != nil {
		p.ProjectTags = input.ProjectTags
	}
	if input.AwardDate != nil {
		p.AwardDate = input.AwardDate
	}
	if input.ContractSum != nil {
		p.ContractSum = input.ContractSum
	}
	if input.Duration != nil {
		p.Duration = input.Duration
	}
	if input.MobilisationPaid != nil {
		p.MobilisationPaid = input.MobilisationPaid
	}
	if input.InterimCertificateEarned != nil {
		p.InterimCertificateEarned = input.InterimCertificateEarned
	}
	if input.Remark != nil {
		p.Remark = input.Remark
	}

	if err := s.Repos.Project.Update(p); err != nil {
		return nil, err
	}
	s.audit.Record(actorID, "update", "project", p.PID, old, p)
	return p, nil
}

func (s *ProjectService) Delete(actorID, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.Repos.Project.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actorID, "delete", "project", id, nil, nil)
	return nil
}
