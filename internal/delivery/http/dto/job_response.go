package dto

import (
	"time"

	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

type SalaryResponse struct {
	Min  int64  `json:"min"`
	Max  int64  `json:"max"`
	Unit string `json:"unit"`
	Per  string `json:"per"`
}

type SkillRequirementResponse struct {
	SkillID string `json:"skill_id"`
	Level   int    `json:"level"`
}

type JobResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Company           CompanyResponse            `json:"company"`
	Title             string                     `json:"title"`
	Description       string                     `json:"description"`
	Location          string                     `json:"location"`
	Remote            bool                       `json:"remote"`
	Type              string                     `json:"type"`
	Responsibilities  []string                   `json:"responsibilities"`
	ProfessionalLevel string                     `json:"professional_level"`
	Salary            SalaryResponse             `json:"salary"`
	Contact           *string                    `json:"contact"`
	LastUpdate        string                     `json:"last_update"`
	SkillRequirements []SkillRequirementResponse `json:"skill_requirements"`
}

// NewJobResponse serializes a job for the caller. The contact field is
// nulled, not omitted, when the view withholds it.
func NewJobResponse(v usecase.JobView) JobResponse {
	j := v.Job

	var contact *string
	if v.IncludeContact {
		c := j.Contact
		contact = &c
	}

	resp := j.Responsibilities
	if resp == nil {
		resp = []string{}
	}

	reqs := make([]SkillRequirementResponse, 0, len(j.SkillRequirements))
	for _, r := range j.SkillRequirements {
		reqs = append(reqs, SkillRequirementResponse{SkillID: r.SkillID, Level: r.Level})
	}

	lastUpdate := ""
	if !j.LastUpdate.IsZero() {
		lastUpdate = j.LastUpdate.UTC().Format(time.RFC3339)
	}

	return JobResponse{
		ID:                j.ID,
		Company:           NewCompanyResponse(j.Company),
		Title:             j.Title,
		Description:       j.Description,
		Location:          j.Location,
		Remote:            j.Remote,
		Type:              string(j.Type),
		Responsibilities:  resp,
		ProfessionalLevel: string(j.ProfessionalLevel),
		Salary: SalaryResponse{
			Min:  j.Salary.Min,
			Max:  j.Salary.Max,
			Unit: j.Salary.Unit,
			Per:  string(j.Salary.Per),
		},
		Contact:           contact,
		LastUpdate:        lastUpdate,
		SkillRequirements: reqs,
	}
}
