package project

import "time"

// Project is a works project documents are filed under.
type Project struct {
	PID                      uint      `gorm:"primaryKey;column:p_id;autoIncrement" json:"id"`
	ProjectName              string    `gorm:"size:200;not null;index" json:"project_name"`
	Contractor               *string   `gorm:"size:200" json:"contractor,omitempty"`
	ResidentEngineer         *string   `gorm:"size:200" json:"resident_engineer,omitempty"`
	ProgressReport           *string   `gorm:"type:text" json:"progress_report,omitempty"`
	ProjectTags              *string   `gorm:"size:300" json:"project_tags,omitempty"`
	AwardDate                *string   `gorm:"size:50" json:"award_date,omitempty"`
	ContractSum              *float64  `json:"contract_sum,omitempty"`
	Duration                 *string   `gorm:"size:100" json:"duration,omitempty"`
	MobilisationPaid         *float64  `json:"mobilisation_paid,omitempty"`
	InterimCertificateEarned *float64  `json:"interim_certificate_earned,omitempty"`
	Remark                   *string   `gorm:"type:text" json:"remark,omitempty"`
	CreatedBy                uint      `gorm:"not null" json:"created_by"`
	CreatedAt                time.Time `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
