package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/company"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type stubCompanyRepo struct {
	byID        map[uuid.UUID]company.Company
	names       map[string]bool
	hasJobs     bool
	createCalls int
	updateCalls int
	deleteCalls int
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byID: map[uuid.UUID]company.Company{}, names: map[string]bool{}}
}

func (r *stubCompanyRepo) add(c company.Company) {
	r.byID[c.ID] = c
	r.names[c.Name] = true
}

func (r *stubCompanyRepo) List(context.Context) ([]company.Company, error) {
	out := make([]company.Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return company.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (r *stubCompanyRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *stubCompanyRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	return r.names[name], nil
}

func (r *stubCompanyRepo) HasJobs(context.Context, uuid.UUID) (bool, error) {
	return r.hasJobs, nil
}

func (r *stubCompanyRepo) Create(_ context.Context, c company.Company) error {
	r.createCalls++
	r.add(c)
	return nil
}

func (r *stubCompanyRepo) Update(_ context.Context, c company.Company) error {
	r.updateCalls++
	r.byID[c.ID] = c
	return nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleteCalls++
	if _, ok := r.byID[id]; !ok {
		return repository.ErrCompanyNotFound
	}
	delete(r.byID, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateCompany_NameTaken(t *testing.T) {
	repo := newStubCompanyRepo()
	repo.add(company.Company{ID: uuid.New(), Name: "Acme"})

	uc := NewCompanyUsecase(repo)
	_, err := uc.CreateCompany(context.Background(), CreateCompanyInput{Name: "Acme"})
	if !errors.Is(err, repository.ErrCompanyAlreadyExists) {
		t.Fatalf("expected ErrCompanyAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("conflicting create must not reach the store")
	}
}

func TestCreateCompany_Success(t *testing.T) {
	repo := newStubCompanyRepo()
	uc := NewCompanyUsecase(repo)

	created, err := uc.CreateCompany(context.Background(), CreateCompanyInput{
		Name:    "Acme",
		Website: strPtr("https://acme.example"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if created.Website == nil || *created.Website != "https://acme.example" {
		t.Fatalf("unexpected website: %v", created.Website)
	}
}

func TestUpdateCompany_RenameToTakenName(t *testing.T) {
	repo := newStubCompanyRepo()
	a := company.Company{ID: uuid.New(), Name: "A"}
	repo.add(a)
	repo.add(company.Company{ID: uuid.New(), Name: "B"})

	uc := NewCompanyUsecase(repo)
	_, err := uc.UpdateCompany(context.Background(), a.ID, UpdateCompanyInput{Name: strPtr("B")})
	if !errors.Is(err, repository.ErrCompanyAlreadyExists) {
		t.Fatalf("expected ErrCompanyAlreadyExists, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("conflicting rename must not write")
	}
}

func TestUpdateCompany_RenameToOwnNameIsNoOp(t *testing.T) {
	repo := newStubCompanyRepo()
	a := company.Company{ID: uuid.New(), Name: "A"}
	repo.add(a)

	uc := NewCompanyUsecase(repo)
	got, err := uc.UpdateCompany(context.Background(), a.ID, UpdateCompanyInput{Name: strPtr("A")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "A" {
		t.Fatalf("unexpected name: %s", got.Name)
	}
	if repo.updateCalls != 0 {
		t.Fatal("no-op update must not write")
	}
}

func TestUpdateCompany_StagesOnlyChangedFields(t *testing.T) {
	repo := newStubCompanyRepo()
	a := company.Company{ID: uuid.New(), Name: "A", Description: strPtr("old")}
	repo.add(a)

	uc := NewCompanyUsecase(repo)
	got, err := uc.UpdateCompany(context.Background(), a.ID, UpdateCompanyInput{
		Description: strPtr("new"),
		Website:     strPtr("https://a.example"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("want 1 write, got %d", repo.updateCalls)
	}
	if got.Name != "A" || *got.Description != "new" || *got.Website != "https://a.example" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpdateCompany_NotFound(t *testing.T) {
	uc := NewCompanyUsecase(newStubCompanyRepo())
	_, err := uc.UpdateCompany(context.Background(), uuid.New(), UpdateCompanyInput{})
	if !errors.Is(err, repository.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestDeleteCompany_RejectedWhileJobsReference(t *testing.T) {
	repo := newStubCompanyRepo()
	a := company.Company{ID: uuid.New(), Name: "A"}
	repo.add(a)
	repo.hasJobs = true

	uc := NewCompanyUsecase(repo)
	err := uc.DeleteCompany(context.Background(), a.ID)
	if !errors.Is(err, repository.ErrCompanyHasJobs) {
		t.Fatalf("expected ErrCompanyHasJobs, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Fatal("referenced company must not be deleted")
	}
}

func TestDeleteCompany_NotFound(t *testing.T) {
	uc := NewCompanyUsecase(newStubCompanyRepo())
	err := uc.DeleteCompany(context.Background(), uuid.New())
	if !errors.Is(err, repository.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}
