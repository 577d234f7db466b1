package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
)

// Pagination constants.
const (
	DefaultJobsLimit = 20
	MaxJobsLimit     = 100
)

// Handler handles HTTP requests for the jobs module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new jobs handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers routes available to any authenticated user.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/{id}", h.GetJob)
}

// RegisterStudentRoutes registers routes that require the student role.
func (h *Handler) RegisterStudentRoutes(r chi.Router) {
	r.Post("/jobs/{id}/apply", h.Apply)
	r.Get("/applications", h.ListMyApplications)
}

// RegisterRecruiterRoutes registers routes for company recruiters and
// placement staff.
func (h *Handler) RegisterRecruiterRoutes(r chi.Router) {
	r.Post("/jobs", h.CreateJob)
	r.Patch("/jobs/{id}", h.UpdateJob)
	r.Delete("/jobs/{id}", h.DeleteJob)
	r.Post("/jobs/{id}/publish", h.PublishJob)
	r.Post("/jobs/{id}/close", h.CloseJob)
	r.Get("/jobs/{id}/applications", h.ListJobApplications)
	r.Patch("/applications/{id}", h.AdvanceApplication)
}

// CreateJobRequest represents the request body for creating a job.
type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=255"`
	Salary      string     `json:"salary" validate:"max=255"`
	Type        string     `json:"type" validate:"required,oneof=full_time part_time internship"`
	Skills      []string   `json:"skills"`
	Deadline    *time.Time `json:"deadline"`
	Publish     bool       `json:"publish"`
}

// UpdateJobRequest represents the request body for updating a job.
type UpdateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=255"`
	Salary      string     `json:"salary" validate:"max=255"`
	Type        string     `json:"type" validate:"required,oneof=full_time part_time internship"`
	Skills      []string   `json:"skills"`
	Deadline    *time.Time `json:"deadline"`
}

// ApplyRequest represents the request body for applying to a job.
type ApplyRequest struct {
	ResumeURL string `json:"resume_url" validate:"omitempty,url"`
}

// AdvanceApplicationRequest represents the request body for moving an
// application through the funnel.
type AdvanceApplicationRequest struct {
	Status        string     `json:"status" validate:"required,oneof=shortlisted interviewed selected rejected"`
	InterviewDate *time.Time `json:"interview_date"`
	Feedback      string     `json:"feedback"`
}

// CreateJob handles POST /jobs request.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	job, err := h.service.CreateJob(r.Context(), actor, CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        domain.JobType(req.Type),
		Skills:      req.Skills,
		Deadline:    req.Deadline,
		Publish:     req.Publish,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, job)
}

// GetJob handles GET /jobs/{id} request.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.service.GetJob(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, job)
}

// ListJobs handles GET /jobs request.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := JobFilter{Limit: DefaultJobsLimit}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		filter.Status = domain.JobStatus(v)
	}
	if v := q.Get("type"); v != "" {
		filter.Type = domain.JobType(v)
	}
	if v := q.Get("company_id"); v != "" {
		filter.CompanyID = v
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= MaxJobsLimit {
			filter.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	// Students only see published postings.
	if actor := httputil.GetIdentity(r.Context()); actor != nil && actor.Role == domain.RoleStudent {
		filter.Status = domain.JobStatusOpen
	}

	jobsList, err := h.service.ListJobs(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, jobsList)
}

// UpdateJob handles PATCH /jobs/{id} request.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	job, err := h.service.UpdateJob(r.Context(), actor, id, UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        domain.JobType(req.Type),
		Skills:      req.Skills,
		Deadline:    req.Deadline,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, job)
}

// DeleteJob handles DELETE /jobs/{id} request.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.DeleteJob(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PublishJob handles POST /jobs/{id}/publish request.
func (h *Handler) PublishJob(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.PublishJob)
}

// CloseJob handles POST /jobs/{id}/close request.
func (h *Handler) CloseJob(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.CloseJob)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, op func(context.Context, *domain.Identity, string) (*domain.Job, error)) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	job, err := op(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, job)
}

// Apply handles POST /jobs/{id}/apply request.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req ApplyRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			httputil.ValidationError(w, err)
			return
		}
	}

	app, err := h.service.Apply(r.Context(), actor, chi.URLParam(r, "id"), req.ResumeURL)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, app)
}

// ListMyApplications handles GET /applications request for students.
func (h *Handler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	apps, err := h.service.ListApplications(r.Context(), ApplicationFilter{StudentID: actor.ID})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, apps)
}

// ListJobApplications handles GET /jobs/{id}/applications request.
func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	jobID := chi.URLParam(r, "id")

	// Ownership check happens in the service via the job lookup.
	if _, err := h.service.ownedJob(r.Context(), actor, jobID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	filter := ApplicationFilter{JobID: jobID}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = domain.ApplicationStatus(v)
	}

	apps, err := h.service.ListApplications(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, apps)
}

// AdvanceApplication handles PATCH /applications/{id} request.
func (h *Handler) AdvanceApplication(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AdvanceApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	app, err := h.service.AdvanceApplication(r.Context(), actor, chi.URLParam(r, "id"), AdvanceApplicationInput{
		Status:        domain.ApplicationStatus(req.Status),
		InterviewDate: req.InterviewDate,
		Feedback:      req.Feedback,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, app)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrApplicationNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotJobOwner):
		httputil.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrJobNotOpen), errors.Is(err, ErrJobNotDraft),
		errors.Is(err, ErrAlreadyApplied), errors.Is(err, ErrInvalidTransition):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
