package job

import (
	"fmt"
	"time"

	"jobboard/internal/domain/company"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
	TypeInternship Type = "internship"
	TypeTemporary  Type = "temporary"
	TypeMiniJob    Type = "mini_job"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeFullTime, TypePartTime, TypeInternship, TypeTemporary, TypeMiniJob:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown job type: %q", s)
}

type ProfessionalLevel string

const (
	LevelEntry   ProfessionalLevel = "entry"
	LevelJunior  ProfessionalLevel = "junior"
	LevelSenior  ProfessionalLevel = "senior"
	LevelManager ProfessionalLevel = "manager"
)

func ParseProfessionalLevel(s string) (ProfessionalLevel, error) {
	switch ProfessionalLevel(s) {
	case LevelEntry, LevelJunior, LevelSenior, LevelManager:
		return ProfessionalLevel(s), nil
	}
	return "", fmt.Errorf("unknown professional level: %q", s)
}

type SalaryPer string

const (
	SalaryPerOnce  SalaryPer = "once"
	SalaryPerTask  SalaryPer = "task"
	SalaryPerHour  SalaryPer = "hour"
	SalaryPerDay   SalaryPer = "day"
	SalaryPerMonth SalaryPer = "month"
	SalaryPerYear  SalaryPer = "year"
)

func ParseSalaryPer(s string) (SalaryPer, error) {
	switch SalaryPer(s) {
	case SalaryPerOnce, SalaryPerTask, SalaryPerHour, SalaryPerDay, SalaryPerMonth, SalaryPerYear:
		return SalaryPer(s), nil
	}
	return "", fmt.Errorf("unknown salary period: %q", s)
}

// DefaultRequirementLevel is written for requirements created without an
// explicit proficiency level (historical rows predate the column).
const DefaultRequirementLevel = 10

// SkillRequirement says a job requires skill SkillID at proficiency Level.
// It is owned by its job and removed with it.
type SkillRequirement struct {
	JobID   uuid.UUID
	SkillID string
	Level   int
}

type Salary struct {
	Min  int64
	Max  int64
	Unit string
	Per  SalaryPer
}

type Job struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	Company           company.Company
	Title             string
	Description       string
	Location          string
	Remote            bool
	Type              Type
	Responsibilities  []string
	ProfessionalLevel ProfessionalLevel
	Salary            Salary
	Contact           string
	LastUpdate        time.Time
	SkillRequirements []SkillRequirement
}

// RequiredSkillIDs returns the job's required skill ids in requirement order.
func (j Job) RequiredSkillIDs() []string {
	out := make([]string, 0, len(j.SkillRequirements))
	for _, r := range j.SkillRequirements {
		out = append(out, r.SkillID)
	}
	return out
}
