// Package jobs implements job postings and the application funnel.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
)

// Notifier delivers in-app notifications triggered by funnel activity.
// A nil Notifier disables notifications.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ domain.NotificationType, title, message string) error
}

// Service implements job posting and application business logic.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a new jobs service.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
	}
}

// CreateJobInput holds data for creating a job posting.
type CreateJobInput struct {
	Title       string
	Description string
	Location    string
	Salary      string
	Type        domain.JobType
	Skills      []string
	Deadline    *time.Time
	Publish     bool
}

// UpdateJobInput holds data for updating a job posting.
type UpdateJobInput struct {
	Title       string
	Description string
	Location    string
	Salary      string
	Type        domain.JobType
	Skills      []string
	Deadline    *time.Time
}

// CreateJob creates a job posting owned by the acting company recruiter.
func (s *Service) CreateJob(ctx context.Context, actor *domain.Identity, input CreateJobInput) (*domain.Job, error) {
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid job type: %s", input.Type)
	}

	status := domain.JobStatusDraft
	if input.Publish {
		status = domain.JobStatusOpen
	}

	skills := input.Skills
	if skills == nil {
		skills = make([]string, 0)
	}

	job := &domain.Job{
		ID:          uuid.New().String(),
		CompanyID:   actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
		Type:        input.Type,
		Skills:      skills,
		Status:      status,
		Deadline:    input.Deadline,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job posting by ID.
func (s *Service) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.GetJob(ctx, id)
}

// ListJobs retrieves job postings with optional filters.
func (s *Service) ListJobs(ctx context.Context, filter JobFilter) ([]*domain.Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// UpdateJob updates a job posting. Only the owning company or placement
// staff may modify a posting.
func (s *Service) UpdateJob(ctx context.Context, actor *domain.Identity, id string, input UpdateJobInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid job type: %s", input.Type)
	}

	job.Title = input.Title
	job.Description = input.Description
	job.Location = input.Location
	job.Salary = input.Salary
	job.Type = input.Type
	if input.Skills != nil {
		job.Skills = input.Skills
	}
	job.Deadline = input.Deadline

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// PublishJob moves a job posting to the open state.
func (s *Service) PublishJob(ctx context.Context, actor *domain.Identity, id string) (*domain.Job, error) {
	return s.setJobStatus(ctx, actor, id, domain.JobStatusOpen)
}

// CloseJob moves a job posting to the closed state. Closing is allowed
// from any state and stops new applications.
func (s *Service) CloseJob(ctx context.Context, actor *domain.Identity, id string) (*domain.Job, error) {
	return s.setJobStatus(ctx, actor, id, domain.JobStatusClosed)
}

// DeleteJob removes a draft posting. Published postings must be closed
// instead so that existing applications keep their history.
func (s *Service) DeleteJob(ctx context.Context, actor *domain.Identity, id string) error {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return err
	}

	if job.Status != domain.JobStatusDraft {
		return ErrJobNotDraft
	}

	return s.repo.DeleteJob(ctx, id)
}

// Apply submits a student's application to an open job posting.
func (s *Service) Apply(ctx context.Context, actor *domain.Identity, jobID, resumeURL string) (*domain.Application, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	if !job.IsOpen() {
		return nil, ErrJobNotOpen
	}
	if job.Deadline != nil && time.Now().After(*job.Deadline) {
		return nil, ErrJobNotOpen
	}

	exists, err := s.repo.HasApplication(ctx, jobID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("check application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:        uuid.New().String(),
		JobID:     jobID,
		StudentID: actor.ID,
		Status:    domain.ApplicationStatusApplied,
		ResumeURL: resumeURL,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.notify(ctx, job.CompanyID, domain.NotificationTypeInfo,
		"New application received",
		fmt.Sprintf("%s applied for %s", actor.Name, job.Title))

	return app, nil
}

// GetApplication retrieves an application by ID.
func (s *Service) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	return s.repo.GetApplication(ctx, id)
}

// ListApplications retrieves applications with optional filters.
func (s *Service) ListApplications(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error) {
	return s.repo.ListApplications(ctx, filter)
}

// AdvanceApplicationInput holds data for moving an application through
// the funnel.
type AdvanceApplicationInput struct {
	Status        domain.ApplicationStatus
	InterviewDate *time.Time
	Feedback      string
}

// AdvanceApplication moves an application to the next funnel stage and
// notifies the student. The funnel only moves forward one stage at a
// time; rejection is allowed from any non-terminal stage.
func (s *Service) AdvanceApplication(ctx context.Context, actor *domain.Identity, id string, input AdvanceApplicationInput) (*domain.Application, error) {
	if !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid application status: %s", input.Status)
	}

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	job, err := s.ownedJob(ctx, actor, app.JobID)
	if err != nil {
		return nil, err
	}

	if !app.Status.CanTransitionTo(input.Status) {
		return nil, ErrInvalidTransition
	}

	app.Status = input.Status
	if input.InterviewDate != nil {
		app.InterviewDate = input.InterviewDate
	}
	if input.Feedback != "" {
		app.Feedback = input.Feedback
	}

	if err := s.repo.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	typ, title := statusNotification(input.Status)
	s.notify(ctx, app.StudentID, typ, title,
		fmt.Sprintf("Your application for %s is now %s", job.Title, input.Status))

	return app, nil
}

// ownedJob fetches a job and verifies the actor may manage it. Placement
// staff may manage any posting.
func (s *Service) ownedJob(ctx context.Context, actor *domain.Identity, id string) (*domain.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	if actor.Role != domain.RolePlacement && job.CompanyID != actor.ID {
		return nil, ErrNotJobOwner
	}
	return job, nil
}

func (s *Service) setJobStatus(ctx context.Context, actor *domain.Identity, id string, status domain.JobStatus) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if job.Status == status {
		return job, nil
	}

	job.Status = status
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// notify enqueues a notification and logs failures without failing the
// triggering operation.
func (s *Service) notify(ctx context.Context, userID string, typ domain.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, typ, title, message); err != nil {
		ctxlog.FromContext(ctx).Warn("failed to enqueue notification",
			"user_id", userID,
			"error", err)
	}
}

func statusNotification(status domain.ApplicationStatus) (domain.NotificationType, string) {
	switch status {
	case domain.ApplicationStatusSelected:
		return domain.NotificationTypeSuccess, "Congratulations, you were selected"
	case domain.ApplicationStatusRejected:
		return domain.NotificationTypeError, "Application update"
	case domain.ApplicationStatusInterviewed:
		return domain.NotificationTypeInfo, "Interview stage completed"
	default:
		return domain.NotificationTypeInfo, "Application status updated"
	}
}
