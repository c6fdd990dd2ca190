package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"jobboard/internal/domain/identity"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/policy"
	"jobboard/internal/infrastructure/skills"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type SkillRequirementInput struct {
	SkillID string
	Level   int
}

type SalaryInput struct {
	Min  int64
	Max  int64
	Unit string
	Per  job.SalaryPer
}

type CreateJobInput struct {
	CompanyID         uuid.UUID
	Title             string
	Description       string
	Location          string
	Remote            bool
	Type              job.Type
	Responsibilities  []string
	ProfessionalLevel job.ProfessionalLevel
	Salary            SalaryInput
	Contact           string
	SkillRequirements []SkillRequirementInput
}

// UpdateJobInput carries a partial update: nil means "not supplied".
// Responsibilities and SkillRequirements use nil-slice for "not supplied"
// and an empty slice for "clear".
type UpdateJobInput struct {
	CompanyID         *uuid.UUID
	Title             *string
	Description       *string
	Location          *string
	Remote            *bool
	Type              *job.Type
	Responsibilities  []string
	ProfessionalLevel *job.ProfessionalLevel
	Salary            *SalaryInput
	Contact           *string
	SkillRequirements []SkillRequirementInput
}

// JobView pairs a job with the caller-specific contact disclosure decision.
type JobView struct {
	Job            job.Job
	IncludeContact bool
}

type JobUsecase interface {
	ListJobs(ctx context.Context, viewer *identity.Identity, filter repository.JobFilter, requirementsMet *bool) ([]JobView, error)
	GetJob(ctx context.Context, viewer *identity.Identity, id uuid.UUID) (JobView, error)
	CreateJob(ctx context.Context, in CreateJobInput) (JobView, error)
	UpdateJob(ctx context.Context, id uuid.UUID, in UpdateJobInput) (JobView, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

type Jobs struct {
	jobs      repository.JobRepository
	reqs      repository.SkillRequirementRepository
	companies repository.CompanyRepository
	directory skills.Directory
	logger    *log.Logger
	now       func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	reqs repository.SkillRequirementRepository,
	companies repository.CompanyRepository,
	directory skills.Directory,
	logger *log.Logger,
) *Jobs {
	return &Jobs{
		jobs:      jobs,
		reqs:      reqs,
		companies: companies,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
}

// completedSkills fetches the caller's completed-skill set once per request.
// Anonymous, unverified and admin callers never trigger a fetch. A directory
// failure degrades to an empty set so listings still work; contact stays
// hidden for requirement-bearing jobs.
func (u *Jobs) completedSkills(ctx context.Context, viewer *identity.Identity) policy.SkillSet {
	if viewer == nil || !viewer.EmailVerified || viewer.Admin {
		return nil
	}
	completed, err := u.directory.CompletedSkills(ctx, viewer.UserID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] skill directory unavailable, treating completed set as empty: %v", err)
		}
		return nil
	}
	return completed
}

func (u *Jobs) ListJobs(ctx context.Context, viewer *identity.Identity, filter repository.JobFilter, requirementsMet *bool) ([]JobView, error) {
	completed := u.completedSkills(ctx, viewer)

	items, err := u.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]uuid.UUID, 0, len(items))
	for _, j := range items {
		jobIDs = append(jobIDs, j.ID)
	}
	reqsByJob, err := u.reqs.FindByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	out := make([]JobView, 0, len(items))
	for _, j := range items {
		j.SkillRequirements = reqsByJob[j.ID]

		// the requirements_met filter and the contact decision share the
		// single per-request completed-skills fetch
		required := j.RequiredSkillIDs()
		met := policy.RequirementsMet(required, completed)
		if requirementsMet != nil && met != *requirementsMet {
			continue
		}

		out = append(out, JobView{
			Job:            j,
			IncludeContact: policy.CanViewContact(viewer, required, completed),
		})
	}
	return out, nil
}

func (u *Jobs) GetJob(ctx context.Context, viewer *identity.Identity, id uuid.UUID) (JobView, error) {
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		return JobView{}, err
	}
	j.SkillRequirements, err = u.reqs.FindByJobID(ctx, id)
	if err != nil {
		return JobView{}, err
	}

	completed := u.completedSkills(ctx, viewer)
	return JobView{
		Job:            j,
		IncludeContact: policy.CanViewContact(viewer, j.RequiredSkillIDs(), completed),
	}, nil
}

func (u *Jobs) CreateJob(ctx context.Context, in CreateJobInput) (JobView, error) {
	exists, err := u.companies.ExistsByID(ctx, in.CompanyID)
	if err != nil {
		return JobView{}, err
	}
	if !exists {
		return JobView{}, repository.ErrCompanyNotFound
	}

	if err := u.validateSkills(ctx, in.SkillRequirements); err != nil {
		return JobView{}, err
	}

	j := job.Job{
		ID:                uuid.New(),
		CompanyID:         in.CompanyID,
		Title:             in.Title,
		Description:       in.Description,
		Location:          in.Location,
		Remote:            in.Remote,
		Type:              in.Type,
		Responsibilities:  in.Responsibilities,
		ProfessionalLevel: in.ProfessionalLevel,
		Salary: job.Salary{
			Min:  in.Salary.Min,
			Max:  in.Salary.Max,
			Unit: in.Salary.Unit,
			Per:  in.Salary.Per,
		},
		Contact:           in.Contact,
		LastUpdate:        u.now().UTC(),
		SkillRequirements: toRequirements(uuid.Nil, in.SkillRequirements),
	}
	for i := range j.SkillRequirements {
		j.SkillRequirements[i].JobID = j.ID
	}

	if err := u.jobs.Create(ctx, j); err != nil {
		return JobView{}, err
	}

	j.Company, err = u.companies.FindByID(ctx, j.CompanyID)
	if err != nil {
		return JobView{}, err
	}
	return JobView{Job: j, IncludeContact: true}, nil
}

func (u *Jobs) UpdateJob(ctx context.Context, id uuid.UUID, in UpdateJobInput) (JobView, error) {
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		return JobView{}, err
	}
	current, err := u.reqs.FindByJobID(ctx, id)
	if err != nil {
		return JobView{}, err
	}

	if in.CompanyID != nil && *in.CompanyID != j.CompanyID {
		exists, err := u.companies.ExistsByID(ctx, *in.CompanyID)
		if err != nil {
			return JobView{}, err
		}
		if !exists {
			return JobView{}, repository.ErrCompanyNotFound
		}
		j.CompanyID = *in.CompanyID
	}

	// validate the new requirement set before any write so a rejected
	// update leaves the old set fully intact. A level-only change still
	// replaces the set but introduces no new ids, so the catalog is not
	// consulted for it.
	replaceReqs := in.SkillRequirements != nil && !sameRequirements(current, in.SkillRequirements)
	if replaceReqs && !sameSkillIDs(current, in.SkillRequirements) {
		if err := u.validateSkills(ctx, in.SkillRequirements); err != nil {
			return JobView{}, err
		}
	}

	stage(&j.Title, in.Title)
	stage(&j.Description, in.Description)
	stage(&j.Location, in.Location)
	stage(&j.Remote, in.Remote)
	stage(&j.Type, in.Type)
	stage(&j.ProfessionalLevel, in.ProfessionalLevel)
	stage(&j.Contact, in.Contact)
	if in.Responsibilities != nil && !slices.Equal(in.Responsibilities, j.Responsibilities) {
		j.Responsibilities = in.Responsibilities
	}
	if in.Salary != nil {
		j.Salary = job.Salary{
			Min:  in.Salary.Min,
			Max:  in.Salary.Max,
			Unit: in.Salary.Unit,
			Per:  in.Salary.Per,
		}
	}

	// touch semantics: last_update advances on every successful PATCH
	j.LastUpdate = u.now().UTC()
	if err := u.jobs.Update(ctx, j); err != nil {
		return JobView{}, err
	}

	if replaceReqs {
		reqs := toRequirements(j.ID, in.SkillRequirements)
		if err := u.reqs.Replace(ctx, j.ID, reqs); err != nil {
			return JobView{}, err
		}
		j.SkillRequirements = reqs
	} else {
		j.SkillRequirements = current
	}

	j.Company, err = u.companies.FindByID(ctx, j.CompanyID)
	if err != nil {
		return JobView{}, err
	}
	return JobView{Job: j, IncludeContact: true}, nil
}

func (u *Jobs) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return u.jobs.Delete(ctx, id)
}

// validateSkills checks every requested skill id against the external
// catalog. An unreachable directory fails the write; unknown skills must
// never be accepted silently.
func (u *Jobs) validateSkills(ctx context.Context, reqs []SkillRequirementInput) error {
	if len(reqs) == 0 {
		return nil
	}
	catalog, err := u.directory.CatalogIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSkillDirectoryUnavailable, err)
	}
	for _, r := range reqs {
		if !catalog.Contains(r.SkillID) {
			return ErrSkillNotFound
		}
	}
	return nil
}

func toRequirements(jobID uuid.UUID, in []SkillRequirementInput) []job.SkillRequirement {
	out := make([]job.SkillRequirement, 0, len(in))
	for _, r := range in {
		level := r.Level
		if level <= 0 {
			level = job.DefaultRequirementLevel
		}
		out = append(out, job.SkillRequirement{JobID: jobID, SkillID: r.SkillID, Level: level})
	}
	return out
}

// sameRequirements reports whether the supplied set matches the stored one
// exactly, levels included. Supplied levels are normalized the way the
// insert path writes them so a defaulted level never reads as a change.
func sameRequirements(current []job.SkillRequirement, in []SkillRequirementInput) bool {
	if len(current) != len(in) {
		return false
	}
	levels := make(map[string]int, len(current))
	for _, r := range current {
		levels[r.SkillID] = r.Level
	}
	for _, r := range in {
		level := r.Level
		if level <= 0 {
			level = job.DefaultRequirementLevel
		}
		have, ok := levels[r.SkillID]
		if !ok || have != level {
			return false
		}
	}
	return true
}

func sameSkillIDs(current []job.SkillRequirement, in []SkillRequirementInput) bool {
	if len(current) != len(in) {
		return false
	}
	ids := make(map[string]struct{}, len(current))
	for _, r := range current {
		ids[r.SkillID] = struct{}{}
	}
	for _, r := range in {
		if _, ok := ids[r.SkillID]; !ok {
			return false
		}
	}
	return true
}

// stage overwrites dst when supplied is present and differs.
func stage[T comparable](dst *T, supplied *T) {
	if supplied == nil || *supplied == *dst {
		return
	}
	*dst = *supplied
}
