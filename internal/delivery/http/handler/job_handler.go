package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	jobTitleMaxLen       = 255
	jobDescriptionMaxLen = 2000
	jobLocationMaxLen    = 255
	jobContactMaxLen     = 255
	jobResponsibilityMax = 16
	jobResponsibilityLen = 512
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterPublicRoutes mounts the read endpoints; callers may be anonymous.
func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterAdminRoutes mounts the write endpoints behind admin auth.
func (h *JobHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

type salaryRequest struct {
	Min  int64  `json:"min"`
	Max  int64  `json:"max"`
	Unit string `json:"unit"`
	Per  string `json:"per"`
}

type skillRequirementRequest struct {
	SkillID string `json:"skill_id"`
	Level   int    `json:"level"`
}

type createJobRequest struct {
	CompanyID         string                    `json:"company_id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Location          string                    `json:"location"`
	Remote            bool                      `json:"remote"`
	Type              string                    `json:"type"`
	Responsibilities  []string                  `json:"responsibilities"`
	ProfessionalLevel string                    `json:"professional_level"`
	Salary            salaryRequest             `json:"salary"`
	Contact           string                    `json:"contact"`
	SkillRequirements []skillRequirementRequest `json:"skill_requirements"`
}

type updateJobRequest struct {
	CompanyID         *string                   `json:"company_id"`
	Title             *string                   `json:"title"`
	Description       *string                   `json:"description"`
	Location          *string                   `json:"location"`
	Remote            *bool                     `json:"remote"`
	Type              *string                   `json:"type"`
	Responsibilities  []string                  `json:"responsibilities"`
	ProfessionalLevel *string                   `json:"professional_level"`
	Salary            *salaryRequest            `json:"salary"`
	Contact           *string                   `json:"contact"`
	SkillRequirements []skillRequirementRequest `json:"skill_requirements"`
}

func (h *JobHandler) List(c fiber.Ctx) error {
	filter, requirementsMet, fields := parseJobListQuery(c)
	if len(fields) > 0 {
		return validationError(fields)
	}

	views, err := h.uc.ListJobs(c.Context(), middleware.IdentityFromCtx(c), filter, requirementsMet)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.NewJobResponse(v))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jobNotFound(err)
	}

	view, err := h.uc.GetJob(c.Context(), middleware.IdentityFromCtx(c), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(view))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var fields []FieldError

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		fields = append(fields, FieldError{Field: "company_id", Message: "must be a valid uuid"})
	}
	jobType, err := job.ParseType(req.Type)
	if err != nil {
		fields = append(fields, FieldError{Field: "type", Message: err.Error()})
	}
	level, err := job.ParseProfessionalLevel(req.ProfessionalLevel)
	if err != nil {
		fields = append(fields, FieldError{Field: "professional_level", Message: err.Error()})
	}
	salaryPer, err := job.ParseSalaryPer(req.Salary.Per)
	if err != nil {
		fields = append(fields, FieldError{Field: "salary.per", Message: err.Error()})
	}

	fields = checkRequired(fields, "title", req.Title)
	fields = checkMaxLen(fields, "title", req.Title, jobTitleMaxLen)
	fields = checkMaxLen(fields, "description", req.Description, jobDescriptionMaxLen)
	fields = checkMaxLen(fields, "location", req.Location, jobLocationMaxLen)
	fields = checkMaxLen(fields, "contact", req.Contact, jobContactMaxLen)
	fields = checkResponsibilities(fields, req.Responsibilities)
	fields = checkSalaryBounds(fields, req.Salary)
	fields = checkSkillRequirements(fields, req.SkillRequirements)
	if len(fields) > 0 {
		return validationError(fields)
	}

	view, err := h.uc.CreateJob(c.Context(), usecase.CreateJobInput{
		CompanyID:         companyID,
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Remote:            req.Remote,
		Type:              jobType,
		Responsibilities:  req.Responsibilities,
		ProfessionalLevel: level,
		Salary: usecase.SalaryInput{
			Min:  req.Salary.Min,
			Max:  req.Salary.Max,
			Unit: req.Salary.Unit,
			Per:  salaryPer,
		},
		Contact:           req.Contact,
		SkillRequirements: toSkillRequirementInputs(req.SkillRequirements),
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(view))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jobNotFound(err)
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var fields []FieldError
	in := usecase.UpdateJobInput{
		Remote:            req.Remote,
		Responsibilities:  req.Responsibilities,
		Contact:           req.Contact,
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
	}

	if req.CompanyID != nil {
		companyID, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			fields = append(fields, FieldError{Field: "company_id", Message: "must be a valid uuid"})
		} else {
			in.CompanyID = &companyID
		}
	}
	if req.Type != nil {
		jobType, err := job.ParseType(*req.Type)
		if err != nil {
			fields = append(fields, FieldError{Field: "type", Message: err.Error()})
		} else {
			in.Type = &jobType
		}
	}
	if req.ProfessionalLevel != nil {
		level, err := job.ParseProfessionalLevel(*req.ProfessionalLevel)
		if err != nil {
			fields = append(fields, FieldError{Field: "professional_level", Message: err.Error()})
		} else {
			in.ProfessionalLevel = &level
		}
	}
	if req.Salary != nil {
		per, err := job.ParseSalaryPer(req.Salary.Per)
		if err != nil {
			fields = append(fields, FieldError{Field: "salary.per", Message: err.Error()})
		} else {
			in.Salary = &usecase.SalaryInput{
				Min:  req.Salary.Min,
				Max:  req.Salary.Max,
				Unit: req.Salary.Unit,
				Per:  per,
			}
		}
		fields = checkSalaryBounds(fields, *req.Salary)
	}
	if req.Title != nil && *req.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "must not be empty"})
	}
	if req.SkillRequirements != nil {
		in.SkillRequirements = toSkillRequirementInputs(req.SkillRequirements)
		fields = checkSkillRequirements(fields, req.SkillRequirements)
	}

	fields = checkOptionalMaxLen(fields, "title", req.Title, jobTitleMaxLen)
	fields = checkOptionalMaxLen(fields, "description", req.Description, jobDescriptionMaxLen)
	fields = checkOptionalMaxLen(fields, "location", req.Location, jobLocationMaxLen)
	fields = checkOptionalMaxLen(fields, "contact", req.Contact, jobContactMaxLen)
	if req.Responsibilities != nil {
		fields = checkResponsibilities(fields, req.Responsibilities)
	}
	if len(fields) > 0 {
		return validationError(fields)
	}

	view, err := h.uc.UpdateJob(c.Context(), id, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(view))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jobNotFound(err)
	}

	if err := h.uc.DeleteJob(c.Context(), id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, true)
}

// parseJobListQuery reads the optional listing filters. A malformed value is
// rejected rather than silently dropped.
func parseJobListQuery(c fiber.Ctx) (repository.JobFilter, *bool, []FieldError) {
	var (
		filter repository.JobFilter
		fields []FieldError
	)

	filter.SearchTerm = c.Query("search")
	filter.Location = c.Query("location")
	filter.SalaryUnit = c.Query("salary_unit")

	if raw := c.Query("remote"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "remote", Message: "must be a boolean"})
		} else {
			filter.Remote = &v
		}
	}
	for _, raw := range splitQueryList(c.Query("type")) {
		t, err := job.ParseType(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "type", Message: err.Error()})
			continue
		}
		filter.Types = append(filter.Types, t)
	}
	for _, raw := range splitQueryList(c.Query("professional_level")) {
		l, err := job.ParseProfessionalLevel(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "professional_level", Message: err.Error()})
			continue
		}
		filter.ProfessionalLevels = append(filter.ProfessionalLevels, l)
	}
	if raw := c.Query("salary_min"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "salary_min", Message: "must be an integer"})
		} else {
			filter.SalaryMin = &v
		}
	}
	if raw := c.Query("salary_max"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "salary_max", Message: "must be an integer"})
		} else {
			filter.SalaryMax = &v
		}
	}
	if raw := c.Query("salary_per"); raw != "" {
		p, err := job.ParseSalaryPer(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "salary_per", Message: err.Error()})
		} else {
			filter.SalaryPer = &p
		}
	}

	var requirementsMet *bool
	if raw := c.Query("requirements_met"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "requirements_met", Message: "must be a boolean"})
		} else {
			requirementsMet = &v
		}
	}

	return filter, requirementsMet, fields
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func checkResponsibilities(fields []FieldError, items []string) []FieldError {
	if len(items) > jobResponsibilityMax {
		fields = append(fields, FieldError{Field: "responsibilities", Message: fmt.Sprintf("must have at most %d entries", jobResponsibilityMax)})
	}
	for i, it := range items {
		if len(it) > jobResponsibilityLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("responsibilities[%d]", i),
				Message: fmt.Sprintf("must be at most %d characters", jobResponsibilityLen),
			})
		}
	}
	return fields
}

func checkSalaryBounds(fields []FieldError, s salaryRequest) []FieldError {
	if s.Min < 0 {
		fields = append(fields, FieldError{Field: "salary.min", Message: "must not be negative"})
	}
	if s.Max < s.Min {
		fields = append(fields, FieldError{Field: "salary.max", Message: "must not be below salary.min"})
	}
	return fields
}

func checkSkillRequirements(fields []FieldError, reqs []skillRequirementRequest) []FieldError {
	seen := make(map[string]struct{}, len(reqs))
	for i, r := range reqs {
		if r.SkillID == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("skill_requirements[%d].skill_id", i), Message: "is required"})
			continue
		}
		if _, dup := seen[r.SkillID]; dup {
			fields = append(fields, FieldError{Field: fmt.Sprintf("skill_requirements[%d].skill_id", i), Message: "is duplicated"})
		}
		seen[r.SkillID] = struct{}{}
	}
	return fields
}

func toSkillRequirementInputs(reqs []skillRequirementRequest) []usecase.SkillRequirementInput {
	out := make([]usecase.SkillRequirementInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, usecase.SkillRequirementInput{SkillID: r.SkillID, Level: r.Level})
	}
	return out
}

func jobNotFound(cause error) error {
	return middleware.NewAppError(fiber.StatusNotFound, "Job not found", errCode("job_not_found"), cause)
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return jobNotFound(err)
	case errors.Is(err, repository.ErrCompanyNotFound):
		return companyNotFound(err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", errCode("skill_not_found"), err)
	case errors.Is(err, usecase.ErrSkillDirectoryUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Skill directory unavailable", errCode("skill_directory_unavailable"), err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return validationError(nil)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
