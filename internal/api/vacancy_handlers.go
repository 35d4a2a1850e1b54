package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VacancyHandler serves the public careers listing and the admin vacancy
// CRUD.
type VacancyHandler struct {
	vacancies store.VacancyStore
	logger    *zap.Logger
}

func NewVacancyHandler(vacancies store.VacancyStore, logger *zap.Logger) *VacancyHandler {
	return &VacancyHandler{vacancies: vacancies, logger: logger}
}

// ListPublic handles GET /api/vacancies: only active postings are shown on
// the careers page.
func (h *VacancyHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.vacancies.ListVacancies(r.Context())
	if err != nil {
		h.logger.Error("vacancy listing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	active := make([]model.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if v.Status == model.VacancyStatusActive {
			active = append(active, v)
		}
	}

	respondData(w, http.StatusOK, active)
}

// ListAll handles GET /api/vacancies/all (admin): every vacancy regardless
// of status.
func (h *VacancyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.vacancies.ListVacancies(r.Context())
	if err != nil {
		h.logger.Error("vacancy listing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	respondData(w, http.StatusOK, vacancies)
}

// Get handles GET /api/vacancies/{id}.
func (h *VacancyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vacancy, err := h.vacancies.GetVacancy(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Vacancy not found")
		return
	}
	if err != nil {
		h.logger.Error("vacancy lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, vacancy)
}

type vacancyRequest struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"`
}

func (req *vacancyRequest) validate() string {
	if msg := requireFields(requiredField{"title", req.Title}); msg != "" {
		return msg
	}
	if req.Status != "" && req.Status != model.VacancyStatusActive && req.Status != model.VacancyStatusClosed {
		return "status must be active or closed"
	}
	return ""
}

// Create handles POST /api/vacancies (admin).
func (h *VacancyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	status := req.Status
	if status == "" {
		status = model.VacancyStatusActive
	}
	if req.Requirements == nil {
		req.Requirements = []string{}
	}

	vacancy := &model.Vacancy{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.vacancies.CreateVacancy(r.Context(), vacancy); err != nil {
		h.logger.Error("vacancy creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusCreated, vacancy)
}

// Update handles PUT /api/vacancies/{id} (admin).
func (h *VacancyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req vacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	vacancy, err := h.vacancies.GetVacancy(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Vacancy not found")
		return
	}
	if err != nil {
		h.logger.Error("vacancy lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	vacancy.Title = req.Title
	vacancy.Department = req.Department
	vacancy.Location = req.Location
	vacancy.Type = req.Type
	vacancy.Description = req.Description
	if req.Requirements != nil {
		vacancy.Requirements = req.Requirements
	}
	if req.Status != "" {
		vacancy.Status = req.Status
	}
	vacancy.UpdatedAt = time.Now()

	if err := h.vacancies.UpdateVacancy(r.Context(), vacancy); err != nil {
		h.logger.Error("vacancy update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, vacancy)
}

// Delete handles DELETE /api/vacancies/{id} (admin).
func (h *VacancyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.vacancies.DeleteVacancy(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Vacancy not found")
		return
	}
	if err != nil {
		h.logger.Error("vacancy deletion failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondMessage(w, http.StatusOK, "Vacancy deleted")
}
