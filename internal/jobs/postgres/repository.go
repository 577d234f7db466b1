// Package postgres provides PostgreSQL implementation of the jobs repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/jobs"
)

// Repository implements the jobs.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateJob creates a new job posting in the database.
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, company_id, title, description, location, salary, type, skills, status, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		job.ID,
		job.CompanyID,
		job.Title,
		job.Description,
		job.Location,
		job.Salary,
		job.Type,
		job.Skills,
		job.Status,
		job.Deadline,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job posting by ID.
func (r *Repository) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT id, company_id, title, description, location, salary, type, skills, status, deadline, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.CompanyID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.Salary,
		&job.Type,
		&job.Skills,
		&job.Status,
		&job.Deadline,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// UpdateJob updates an existing job posting.
func (r *Repository) UpdateJob(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, location = $4, salary = $5,
		    type = $6, skills = $7, status = $8, deadline = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Location,
		job.Salary,
		job.Type,
		job.Skills,
		job.Status,
		job.Deadline,
	).Scan(&job.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobs.ErrJobNotFound
		}
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// DeleteJob removes a job posting.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return jobs.ErrJobNotFound
	}
	return nil
}

// ListJobs retrieves job postings matching the filter, newest first.
func (r *Repository) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*domain.Job, error) {
	var conditions []string
	var args []any

	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `
		SELECT id, company_id, title, description, location, salary, type, skills, status, deadline, created_at, updated_at
		FROM jobs
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobsList := make([]*domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.CompanyID,
			&job.Title,
			&job.Description,
			&job.Location,
			&job.Salary,
			&job.Type,
			&job.Skills,
			&job.Status,
			&job.Deadline,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobsList = append(jobsList, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobsList, nil
}

// CreateApplication creates a new application in the database.
func (r *Repository) CreateApplication(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, student_id, status, resume_url, interview_date, feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING applied_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		app.ID,
		app.JobID,
		app.StudentID,
		app.Status,
		app.ResumeURL,
		app.InterviewDate,
		app.Feedback,
	).Scan(&app.AppliedAt, &app.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by ID.
func (r *Repository) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT id, job_id, student_id, status, resume_url, interview_date, feedback, applied_at, updated_at
		FROM applications
		WHERE id = $1
	`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.StudentID,
		&app.Status,
		&app.ResumeURL,
		&app.InterviewDate,
		&app.Feedback,
		&app.AppliedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jobs.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// UpdateApplication updates an existing application.
func (r *Repository) UpdateApplication(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications
		SET status = $2, resume_url = $3, interview_date = $4, feedback = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		app.ID,
		app.Status,
		app.ResumeURL,
		app.InterviewDate,
		app.Feedback,
	).Scan(&app.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobs.ErrApplicationNotFound
		}
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// ListApplications retrieves applications matching the filter, newest first.
func (r *Repository) ListApplications(ctx context.Context, filter jobs.ApplicationFilter) ([]*domain.Application, error) {
	var conditions []string
	var args []any

	if filter.JobID != "" {
		args = append(args, filter.JobID)
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `
		SELECT id, job_id, student_id, status, resume_url, interview_date, feedback, applied_at, updated_at
		FROM applications
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY applied_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.StudentID,
			&app.Status,
			&app.ResumeURL,
			&app.InterviewDate,
			&app.Feedback,
			&app.AppliedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}

// HasApplication reports whether the student already applied to the job.
func (r *Repository) HasApplication(ctx context.Context, jobID, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND student_id = $2)`,
		jobID, studentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return exists, nil
}
