package jobs

import "errors"

// Domain errors for the jobs module.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrJobNotOpen          = errors.New("job is not open for applications")
	ErrJobNotDraft         = errors.New("only draft jobs can be deleted")
	ErrAlreadyApplied      = errors.New("student has already applied to this job")
	ErrNotJobOwner         = errors.New("job belongs to another company")
	ErrInvalidTransition   = errors.New("application status transition not allowed")
)
