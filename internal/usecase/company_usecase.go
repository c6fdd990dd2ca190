package usecase

import (
	"context"
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type CreateCompanyInput struct {
	Name            string
	Description     *string
	Website         *string
	YoutubeVideo    *string
	TwitterHandle   *string
	InstagramHandle *string
	LogoURL         *string
}

// UpdateCompanyInput carries a partial update: nil means "not supplied".
type UpdateCompanyInput struct {
	Name            *string
	Description     *string
	Website         *string
	YoutubeVideo    *string
	TwitterHandle   *string
	InstagramHandle *string
	LogoURL         *string
}

type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
	CreateCompany(ctx context.Context, in CreateCompanyInput) (company.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, in UpdateCompanyInput) (company.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type Companies struct {
	repo repository.CompanyRepository
}

func NewCompanyUsecase(repo repository.CompanyRepository) *Companies {
	return &Companies{repo: repo}
}

func (u *Companies) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return u.repo.List(ctx)
}

func (u *Companies) CreateCompany(ctx context.Context, in CreateCompanyInput) (company.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return company.Company{}, ErrInvalidInput
	}

	// advisory pre-check; the unique constraint is the authoritative guard
	taken, err := u.repo.ExistsByName(ctx, name)
	if err != nil {
		return company.Company{}, err
	}
	if taken {
		return company.Company{}, repository.ErrCompanyAlreadyExists
	}

	c := company.Company{
		ID:              uuid.New(),
		Name:            name,
		Description:     in.Description,
		Website:         in.Website,
		YoutubeVideo:    in.YoutubeVideo,
		TwitterHandle:   in.TwitterHandle,
		InstagramHandle: in.InstagramHandle,
		LogoURL:         in.LogoURL,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return company.Company{}, err
	}
	return c, nil
}

func (u *Companies) UpdateCompany(ctx context.Context, id uuid.UUID, in UpdateCompanyInput) (company.Company, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return company.Company{}, err
	}

	changed := false

	if in.Name != nil && *in.Name != c.Name {
		taken, err := u.repo.ExistsByName(ctx, *in.Name)
		if err != nil {
			return company.Company{}, err
		}
		if taken {
			return company.Company{}, repository.ErrCompanyAlreadyExists
		}
		c.Name = *in.Name
		changed = true
	}

	changed = stageOptional(&c.Description, in.Description) || changed
	changed = stageOptional(&c.Website, in.Website) || changed
	changed = stageOptional(&c.YoutubeVideo, in.YoutubeVideo) || changed
	changed = stageOptional(&c.TwitterHandle, in.TwitterHandle) || changed
	changed = stageOptional(&c.InstagramHandle, in.InstagramHandle) || changed
	changed = stageOptional(&c.LogoURL, in.LogoURL) || changed

	// nothing differs: skip the write entirely (idempotent no-op)
	if !changed {
		return c, nil
	}

	if err := u.repo.Update(ctx, c); err != nil {
		return company.Company{}, err
	}
	return c, nil
}

func (u *Companies) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	referenced, err := u.repo.HasJobs(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return repository.ErrCompanyHasJobs
	}
	return u.repo.Delete(ctx, id)
}

// stageOptional writes supplied into dst when it is present and differs,
// reporting whether a mutation was staged.
func stageOptional(dst **string, supplied *string) bool {
	if supplied == nil {
		return false
	}
	if *dst != nil && **dst == *supplied {
		return false
	}
	*dst = supplied
	return true
}
