package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	List(ctx context.Context, f JobFilter) ([]job.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	// Create inserts the job row and its skill requirements in one transaction.
	Create(ctx context.Context, j job.Job) error
	// Update writes the job row. Skill requirements are replaced separately.
	Update(ctx context.Context, j job.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const jobSelect = `
SELECT j.id, j.company_id, j.title, j.description, j.location, j.remote,
       j.type::text, j.responsibilities, j.professional_level::text,
       j.salary_min, j.salary_max, j.salary_unit, j.salary_per::text,
       j.contact, j.last_update,
       c.name, c.description, c.website, c.youtube_video,
       c.twitter_handle, c.instagram_handle, c.logo_url
FROM jobs j
JOIN companies c ON c.id = j.company_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]job.Job, error) {
	where, args := f.whereClause()
	rows, err := r.db.Query(ctx, jobSelect+` WHERE `+where+` ORDER BY j.last_update DESC, j.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	resp, err := json.Marshal(responsibilitiesOrEmpty(j.Responsibilities))
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, location, remote, type,
		                   responsibilities, professional_level, salary_min, salary_max,
		                   salary_unit, salary_per, contact, last_update)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Remote, string(j.Type),
		resp, string(j.ProfessionalLevel), j.Salary.Min, j.Salary.Max,
		j.Salary.Unit, string(j.Salary.Per), j.Contact, j.LastUpdate,
	)
	if err != nil {
		return err
	}

	if err := insertRequirements(ctx, tx, j.ID, j.SkillRequirements); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	resp, err := json.Marshal(responsibilitiesOrEmpty(j.Responsibilities))
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET company_id = $2, title = $3, description = $4, location = $5, remote = $6,
		     type = $7, responsibilities = $8, professional_level = $9, salary_min = $10,
		     salary_max = $11, salary_unit = $12, salary_per = $13, contact = $14, last_update = $15
		 WHERE id = $1`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Remote, string(j.Type),
		resp, string(j.ProfessionalLevel), j.Salary.Min, j.Salary.Max,
		j.Salary.Unit, string(j.Salary.Per), j.Contact, j.LastUpdate,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// skill_requirements cascade via the FK
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func responsibilitiesOrEmpty(r []string) []string {
	if r == nil {
		return []string{}
	}
	return r
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j         job.Job
		jobType   string
		level     string
		salaryPer string
		respRaw   []byte
	)
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Remote,
		&jobType, &respRaw, &level,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Unit, &salaryPer,
		&j.Contact, &j.LastUpdate,
		&j.Company.Name, &j.Company.Description, &j.Company.Website, &j.Company.YoutubeVideo,
		&j.Company.TwitterHandle, &j.Company.InstagramHandle, &j.Company.LogoURL,
	)
	if err != nil {
		return job.Job{}, err
	}

	j.Type = job.Type(jobType)
	j.ProfessionalLevel = job.ProfessionalLevel(level)
	j.Salary.Per = job.SalaryPer(salaryPer)
	j.Company.ID = j.CompanyID

	if len(respRaw) > 0 {
		if err := json.Unmarshal(respRaw, &j.Responsibilities); err != nil {
			return job.Job{}, err
		}
	}
	return j, nil
}
