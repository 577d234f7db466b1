package jobs

import (
	"context"

	"github.com/placementhub/placementhub/internal/domain"
)

// JobFilter narrows job listings.
type JobFilter struct {
	CompanyID string
	Status    domain.JobStatus
	Type      domain.JobType
	Limit     int
	Offset    int
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID     string
	StudentID string
	Status    domain.ApplicationStatus
}

// Repository defines the data access interface for jobs and applications.
type Repository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	UpdateJob(ctx context.Context, job *domain.Job) error
	DeleteJob(ctx context.Context, id string) error
	ListJobs(ctx context.Context, filter JobFilter) ([]*domain.Job, error)

	CreateApplication(ctx context.Context, app *domain.Application) error
	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	UpdateApplication(ctx context.Context, app *domain.Application) error
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error)
	HasApplication(ctx context.Context, jobID, studentID string) (bool, error)
}
