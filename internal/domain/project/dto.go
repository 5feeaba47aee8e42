package project

type CreateProjectDTO struct {
	ProjectName              string   `json:"project_name" binding:"required"`
	Contractor               *string  `json:"contractor,omitempty"`
	ResidentEngineer         *string  `json:"resident_engineer,omitempty"`
	ProgressReport           *string  `json:"progress_report,omitempty"`
	ProjectTags              *string  `json:"project_tags,omitempty"`
	AwardDate                *string  `json:"award_date,omitempty"`
	ContractSum              *float64 `json:"contract_sum,omitempty"`
	Duration                 *string  `json:"duration,omitempty"`
	MobilisationPaid         *float64 `json:"mobilisation_paid,omitempty"`
	InterimCertificateEarned *float64 `json:"interim_certificate_earned,omitempty"`
	Remark                   *string  `json:"remark,omitempty"`
}

type UpdateProjectDTO struct {
	ProjectName              *string  `json:"project_name,omitempty"`
	Contractor               *string  `json:"contractor,omitempty"`
	ResidentEngineer         *string  `json:"resident_engineer,omitempty"`
	ProgressReport           *string  `json:"progress_report,omitempty"`
	ProjectTags              *string  `json:"project_tags,omitempty"`
	AwardDate                *string  `json:"award_date,omitempty"`
	ContractSum              *float64 `json:"contract_sum,omitempty"`
	Duration                 *string  `json:"duration,omitempty"`
	MobilisationPaid         *float64 `json:"mobilisation_paid,omitempty"`
	InterimCertificateEarned *float64 `json:"interim_certificate_earned,omitempty"`
	Remark                   *string  `json:"remark,omitempty"`
}
