package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/company"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyAlreadyExists = errors.New("company already exists")
	ErrCompanyHasJobs       = errors.New("company has jobs")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type CompanyRepository interface {
	List(ctx context.Context) ([]company.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	HasJobs(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, c company.Company) error
	Update(ctx context.Context, c company.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const companyColumns = `id, name, description, website, youtube_video, twitter_handle, instagram_handle, logo_url`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE name = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) HasJobs(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE company_id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (`+companyColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Description, c.Website, c.YoutubeVideo, c.TwitterHandle, c.InstagramHandle, c.LogoURL,
	)
	return translateCompanyWriteError(err)
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, website = $4, youtube_video = $5,
		     twitter_handle = $6, instagram_handle = $7, logo_url = $8
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Website, c.YoutubeVideo, c.TwitterHandle, c.InstagramHandle, c.LogoURL,
	)
	if err != nil {
		return translateCompanyWriteError(err)
	}
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrCompanyHasJobs
		}
		return err
	}
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

// translateCompanyWriteError turns a race-lost unique violation on the name
// constraint into the conflict the advisory pre-check would have reported.
func translateCompanyWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrCompanyAlreadyExists
	}
	return err
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Website,
		&c.YoutubeVideo, &c.TwitterHandle, &c.InstagramHandle, &c.LogoURL,
	)
	return c, err
}
