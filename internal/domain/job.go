package domain

import "time"

// JobType represents the employment type of a job posting.
type JobType string

// Job types.
const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeInternship JobType = "internship"
)

// IsValid checks if the job type is valid.
func (t JobType) IsValid() bool {
	return t == JobTypeFullTime || t == JobTypePartTime || t == JobTypeInternship
}

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

// Job statuses.
const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// IsValid checks if the job status is valid.
func (s JobStatus) IsValid() bool {
	return s == JobStatusDraft || s == JobStatusOpen || s == JobStatusClosed
}

// Job represents a job posting created by a company recruiter.
type Job struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Salary      string     `json:"salary"`
	Type        JobType    `json:"type"`
	Skills      []string   `json:"skills"`
	Status      JobStatus  `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOpen reports whether students may still apply.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}

// ApplicationStatus represents where an application sits in the hiring funnel.
type ApplicationStatus string

// Application statuses.
const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusSelected    ApplicationStatus = "selected"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// IsValid checks if the application status is valid.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted,
		ApplicationStatusInterviewed, ApplicationStatusSelected,
		ApplicationStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the funnel for this application.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusSelected || s == ApplicationStatusRejected
}

// CanTransitionTo checks whether the funnel allows moving to the given status.
// Rejection is allowed from any non-terminal state; otherwise the funnel only
// moves forward one stage at a time.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == ApplicationStatusRejected {
		return true
	}
	switch s {
	case ApplicationStatusApplied:
		return next == ApplicationStatusShortlisted
	case ApplicationStatusShortlisted:
		return next == ApplicationStatusInterviewed
	case ApplicationStatusInterviewed:
		return next == ApplicationStatusSelected
	}
	return false
}

// Application represents a student's application to a job posting.
type Application struct {
	ID            string            `json:"id"`
	JobID         string            `json:"job_id"`
	StudentID     string            `json:"student_id"`
	Status        ApplicationStatus `json:"status"`
	ResumeURL     string            `json:"resume_url,omitempty"`
	InterviewDate *time.Time        `json:"interview_date,omitempty"`
	Feedback      string            `json:"feedback,omitempty"`
	AppliedAt     time.Time         `json:"applied_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
