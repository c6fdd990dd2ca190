package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SkillRequirementRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]job.SkillRequirement, error)
	FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]job.SkillRequirement, error)
	// Replace swaps the job's full requirement set in one transaction. A
	// partial swap is never observable: on error the old set remains.
	Replace(ctx context.Context, jobID uuid.UUID, reqs []job.SkillRequirement) error
}

type PostgresSkillRequirementRepository struct {
	db database.DB
}

func NewPostgresSkillRequirementRepository(db database.DB) *PostgresSkillRequirementRepository {
	return &PostgresSkillRequirementRepository{db: db}
}

func (r *PostgresSkillRequirementRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]job.SkillRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id, skill_id, level FROM skill_requirements WHERE job_id = $1 ORDER BY skill_id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.SkillRequirement, 0)
	for rows.Next() {
		var sr job.SkillRequirement
		if err := rows.Scan(&sr.JobID, &sr.SkillID, &sr.Level); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRequirementRepository) FindByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]job.SkillRequirement, error) {
	out := make(map[uuid.UUID][]job.SkillRequirement, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, skill_id, level FROM skill_requirements WHERE job_id = ANY($1) ORDER BY skill_id ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sr job.SkillRequirement
		if err := rows.Scan(&sr.JobID, &sr.SkillID, &sr.Level); err != nil {
			return nil, err
		}
		out[sr.JobID] = append(out[sr.JobID], sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRequirementRepository) Replace(ctx context.Context, jobID uuid.UUID, reqs []job.SkillRequirement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM skill_requirements WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	if err := insertRequirements(ctx, tx, jobID, reqs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertRequirements(ctx context.Context, tx database.Tx, jobID uuid.UUID, reqs []job.SkillRequirement) error {
	for _, sr := range reqs {
		level := sr.Level
		if level <= 0 {
			level = job.DefaultRequirementLevel
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO skill_requirements (job_id, skill_id, level) VALUES ($1, $2, $3)`,
			jobID, sr.SkillID, level,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
