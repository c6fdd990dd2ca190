package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/company"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubCompanyUsecase struct {
	listResult  []company.Company
	listErr     error
	createIn    usecase.CreateCompanyInput
	createCalls int
	createErr   error
	updateIn    usecase.UpdateCompanyInput
	updateCalls int
	updateErr   error
	deleteErr   error
}

func (s *stubCompanyUsecase) ListCompanies(context.Context) ([]company.Company, error) {
	return s.listResult, s.listErr
}

func (s *stubCompanyUsecase) CreateCompany(_ context.Context, in usecase.CreateCompanyInput) (company.Company, error) {
	s.createCalls++
	s.createIn = in
	return company.Company{ID: uuid.New(), Name: in.Name}, s.createErr
}

func (s *stubCompanyUsecase) UpdateCompany(_ context.Context, _ uuid.UUID, in usecase.UpdateCompanyInput) (company.Company, error) {
	s.updateCalls++
	s.updateIn = in
	return company.Company{ID: uuid.New()}, s.updateErr
}

func (s *stubCompanyUsecase) DeleteCompany(context.Context, uuid.UUID) error {
	return s.deleteErr
}

func newCompanyTestApp(uc usecase.CompanyUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	NewCompanyHandler(uc).RegisterRoutes(app.Group("/companies"))
	return app
}

func TestCompanyHandler_Create_MissingNameIs422(t *testing.T) {
	uc := &stubCompanyUsecase{}
	app := newCompanyTestApp(uc)

	req := httptest.NewRequest("POST", "/companies/", strings.NewReader(`{"description": "no name"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	out := decodeResponse(t, resp.Body)
	if code := errorCode(t, out.Data); code != "validation_error" {
		t.Fatalf("code = %q, want validation_error", code)
	}
	if uc.createCalls != 0 {
		t.Fatalf("invalid payload reached the usecase")
	}
}

func TestCompanyHandler_Create_DuplicateNameIsConflict(t *testing.T) {
	app := newCompanyTestApp(&stubCompanyUsecase{createErr: repository.ErrCompanyAlreadyExists})

	req := httptest.NewRequest("POST", "/companies/", strings.NewReader(`{"name": "ACME"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	out := decodeResponse(t, resp.Body)
	if code := errorCode(t, out.Data); code != "company_already_exists" {
		t.Fatalf("code = %q, want company_already_exists", code)
	}
}

func TestCompanyHandler_Update_UnparsableIDIsNotFound(t *testing.T) {
	uc := &stubCompanyUsecase{}
	app := newCompanyTestApp(uc)

	req := httptest.NewRequest("PATCH", "/companies/banana", strings.NewReader(`{"name": "ACME"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	out := decodeResponse(t, resp.Body)
	if code := errorCode(t, out.Data); code != "company_not_found" {
		t.Fatalf("code = %q, want company_not_found", code)
	}
	if uc.updateCalls != 0 {
		t.Fatalf("bad id reached the usecase")
	}
}

func TestCompanyHandler_Update_OmittedFieldsStayNil(t *testing.T) {
	uc := &stubCompanyUsecase{}
	app := newCompanyTestApp(uc)

	req := httptest.NewRequest("PATCH", "/companies/"+uuid.NewString(), strings.NewReader(`{"website": "https://acme.test"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	in := uc.updateIn
	if in.Website == nil || *in.Website != "https://acme.test" {
		t.Fatalf("website not forwarded: %+v", in)
	}
	if in.Name != nil || in.Description != nil || in.LogoURL != nil {
		t.Fatalf("omitted fields were populated: %+v", in)
	}
}

func TestCompanyHandler_Delete_ReferencedCompanyIsConflict(t *testing.T) {
	app := newCompanyTestApp(&stubCompanyUsecase{deleteErr: repository.ErrCompanyHasJobs})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/companies/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	out := decodeResponse(t, resp.Body)
	if code := errorCode(t, out.Data); code != "company_has_jobs" {
		t.Fatalf("code = %q, want company_has_jobs", code)
	}
}
