package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const companyFieldMaxLen = 255

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

type createCompanyRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Website         *string `json:"website"`
	YoutubeVideo    *string `json:"youtube_video"`
	TwitterHandle   *string `json:"twitter_handle"`
	InstagramHandle *string `json:"instagram_handle"`
	LogoURL         *string `json:"logo_url"`
}

type updateCompanyRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Website         *string `json:"website"`
	YoutubeVideo    *string `json:"youtube_video"`
	TwitterHandle   *string `json:"twitter_handle"`
	InstagramHandle *string `json:"instagram_handle"`
	LogoURL         *string `json:"logo_url"`
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return mapCompanyUsecaseError(err)
	}

	out := make([]dto.CompanyResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewCompanyResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req createCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var fields []FieldError
	fields = checkRequired(fields, "name", req.Name)
	fields = checkMaxLen(fields, "name", req.Name, companyFieldMaxLen)
	fields = checkCompanyOptionals(fields, req.Description, req.Website, req.YoutubeVideo, req.TwitterHandle, req.InstagramHandle, req.LogoURL)
	if len(fields) > 0 {
		return validationError(fields)
	}

	created, err := h.uc.CreateCompany(c.Context(), usecase.CreateCompanyInput{
		Name:            req.Name,
		Description:     req.Description,
		Website:         req.Website,
		YoutubeVideo:    req.YoutubeVideo,
		TwitterHandle:   req.TwitterHandle,
		InstagramHandle: req.InstagramHandle,
		LogoURL:         req.LogoURL,
	})
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(created))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return companyNotFound(err)
	}

	var req updateCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var fields []FieldError
	fields = checkOptionalMaxLen(fields, "name", req.Name, companyFieldMaxLen)
	if req.Name != nil && *req.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "must not be empty"})
	}
	fields = checkCompanyOptionals(fields, req.Description, req.Website, req.YoutubeVideo, req.TwitterHandle, req.InstagramHandle, req.LogoURL)
	if len(fields) > 0 {
		return validationError(fields)
	}

	updated, err := h.uc.UpdateCompany(c.Context(), id, usecase.UpdateCompanyInput{
		Name:            req.Name,
		Description:     req.Description,
		Website:         req.Website,
		YoutubeVideo:    req.YoutubeVideo,
		TwitterHandle:   req.TwitterHandle,
		InstagramHandle: req.InstagramHandle,
		LogoURL:         req.LogoURL,
	})
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(updated))
}

func (h *CompanyHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return companyNotFound(err)
	}

	if err := h.uc.DeleteCompany(c.Context(), id); err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, true)
}

func checkCompanyOptionals(fields []FieldError, description, website, youtubeVideo, twitterHandle, instagramHandle, logoURL *string) []FieldError {
	fields = checkOptionalMaxLen(fields, "description", description, companyFieldMaxLen)
	fields = checkOptionalMaxLen(fields, "website", website, companyFieldMaxLen)
	fields = checkOptionalMaxLen(fields, "youtube_video", youtubeVideo, companyFieldMaxLen)
	fields = checkOptionalMaxLen(fields, "twitter_handle", twitterHandle, companyFieldMaxLen)
	fields = checkOptionalMaxLen(fields, "instagram_handle", instagramHandle, companyFieldMaxLen)
	fields = checkOptionalMaxLen(fields, "logo_url", logoURL, companyFieldMaxLen)
	return fields
}

func companyNotFound(cause error) error {
	return middleware.NewAppError(fiber.StatusNotFound, "Company not found", errCode("company_not_found"), cause)
}

func mapCompanyUsecaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCompanyNotFound):
		return companyNotFound(err)
	case errors.Is(err, repository.ErrCompanyAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Company already exists", errCode("company_already_exists"), err)
	case errors.Is(err, repository.ErrCompanyHasJobs):
		return middleware.NewAppError(fiber.StatusConflict, "Company has jobs", errCode("company_has_jobs"), err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return validationError([]FieldError{{Field: "name", Message: "is required"}})
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
