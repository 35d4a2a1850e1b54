package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/metrics"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var applicationStatuses = map[string]bool{
	model.ApplicationStatusPending:     true,
	model.ApplicationStatusReviewed:    true,
	model.ApplicationStatusShortlisted: true,
	model.ApplicationStatusRejected:    true,
	model.ApplicationStatusHired:       true,
}

// ApplicationHandler handles job application intake, status checks, and the
// admin review flow.
type ApplicationHandler struct {
	applications store.ApplicationStore
	vacancies    store.VacancyStore
	publisher    event.Publisher
	metrics      *metrics.Collector
	logger       *zap.Logger

	uploadDir     string
	maxUploadSize int64
}

func NewApplicationHandler(
	applications store.ApplicationStore,
	vacancies store.VacancyStore,
	publisher event.Publisher,
	collector *metrics.Collector,
	logger *zap.Logger,
	uploadDir string,
	maxUploadSize int64,
) *ApplicationHandler {
	return &ApplicationHandler{
		applications:  applications,
		vacancies:     vacancies,
		publisher:     publisher,
		metrics:       collector,
		logger:        logger,
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSize,
	}
}

// Submit handles POST /api/applications: a multipart form with applicant
// details and either an uploaded resume file or a Google Drive link.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Request too large or not a valid form")
		return
	}

	vacancyID := r.FormValue("vacancyId")
	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	coverLetter := r.FormValue("coverLetter")
	driveLink := strings.TrimSpace(r.FormValue("resumeDriveLink"))

	if msg := requireFields(
		requiredField{"vacancyId", vacancyID},
		requiredField{"name", name},
		requiredField{"email", email},
		requiredField{"phone", phone},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if !validEmail(email) {
		respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !validPhone(phone) {
		respondError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}

	vacancy, err := h.vacancies.GetVacancy(r.Context(), vacancyID)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Vacancy not found")
		return
	}
	if err != nil {
		h.logger.Error("vacancy lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	if vacancy.Status != model.VacancyStatusActive {
		respondError(w, http.StatusConflict, "This vacancy is no longer accepting applications")
		return
	}

	application := &model.Application{
		ID:              uuid.New().String(),
		ApplicationCode: newApplicationCode(),
		VacancyID:       vacancyID,
		Name:            name,
		Email:           email,
		Phone:           phone,
		CoverLetter:     coverLetter,
		ResumeDriveLink: driveLink,
		Status:          model.ApplicationStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		if !validResumeFilename(header.Filename) {
			respondError(w, http.StatusBadRequest, "Resume must be a PDF or Word document")
			return
		}
		path, err := h.saveResume(application.ID, header.Filename, file)
		if err != nil {
			h.logger.Error("resume save failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
			return
		}
		application.ResumePath = path
		application.ResumeDriveLink = ""
	case errors.Is(err, http.ErrMissingFile):
		if driveLink == "" {
			respondError(w, http.StatusBadRequest, "A resume file or Google Drive link is required")
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	if err := h.applications.CreateApplication(r.Context(), application); err != nil {
		h.logger.Error("application creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	h.publish(r, event.TypeApplicationSubmitted, event.ApplicationSubmitted{
		ApplicationID:   application.ID,
		ApplicationCode: application.ApplicationCode,
		VacancyID:       vacancy.ID,
		VacancyTitle:    vacancy.Title,
		Name:            application.Name,
		Email:           application.Email,
	})

	respondData(w, http.StatusCreated, map[string]any{
		"applicationCode": application.ApplicationCode,
		"status":          application.Status,
	})
}

type checkStatusRequest struct {
	ApplicationCode string `json:"applicationCode"`
	Email           string `json:"email"`
}

// CheckStatus handles POST /api/applications/check-status.
func (h *ApplicationHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	var req checkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(
		requiredField{"applicationCode", req.ApplicationCode},
		requiredField{"email", req.Email},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	application, err := h.applications.GetApplicationByCode(r.Context(), req.ApplicationCode, req.Email)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No application found for that code and email")
		return
	}
	if err != nil {
		h.logger.Error("application lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"applicationCode": application.ApplicationCode,
		"status":          application.Status,
		"submittedAt":     application.CreatedAt,
		"updatedAt":       application.UpdatedAt,
	})
}

// List handles GET /api/applications (admin).
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applications.ListApplications(r.Context())
	if err != nil {
		h.logger.Error("application listing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	respondData(w, http.StatusOK, applications)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/applications/{id}/status (admin).
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !applicationStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "Unknown application status")
		return
	}

	application, err := h.applications.GetApplication(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Application not found")
		return
	}
	if err != nil {
		h.logger.Error("application lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	oldStatus := application.Status
	if err := h.applications.UpdateApplicationStatus(r.Context(), id, req.Status); err != nil {
		h.logger.Error("application status update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if oldStatus != req.Status {
		h.publish(r, event.TypeApplicationStatusChanged, event.ApplicationStatusChanged{
			ApplicationID:   application.ID,
			ApplicationCode: application.ApplicationCode,
			Name:            application.Name,
			Email:           application.Email,
			OldStatus:       oldStatus,
			NewStatus:       req.Status,
		})
	}

	respondMessage(w, http.StatusOK, "Application status updated")
}

// publish sends a domain event; failures are logged and never fail the
// request that triggered them.
func (h *ApplicationHandler) publish(r *http.Request, eventType string, payload any) {
	err := h.publisher.Publish(r.Context(), eventType, payload)
	if h.metrics != nil {
		h.metrics.RecordEventPublished(eventType, err)
	}
	if err != nil {
		h.logger.Error("event publish failed",
			zap.String("type", eventType), zap.Error(err))
	}
}

func (h *ApplicationHandler) saveResume(applicationID, filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(h.uploadDir, applicationID+strings.ToLower(filepath.Ext(filename)))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return path, nil
}

// newApplicationCode derives a short uppercase code from a UUID; applicants
// quote it together with their email to check status.
func newApplicationCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "HT-" + strings.ToUpper(raw[:8])
}
