package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MohamadRiza/happytime/internal/api/middleware"
	"github.com/MohamadRiza/happytime/internal/auth"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerHandler handles customer registration, login, and profile access.
type CustomerHandler struct {
	customers  store.CustomerStore
	jwtService *auth.JWTService
	logger     *zap.Logger
}

func NewCustomerHandler(customers store.CustomerStore, jwtService *auth.JWTService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, jwtService: jwtService, logger: logger}
}

// registerRequest is the merged step-1/step-2 registration payload.
type registerRequest struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Password        string                `json:"password"`
	ConfirmPassword string                `json:"confirmPassword"`
	BusinessDetails model.BusinessDetails `json:"businessDetails"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(
		requiredField{"name", req.Name},
		requiredField{"email", req.Email},
		requiredField{"phone", req.Phone},
		requiredField{"password", req.Password},
		requiredField{"companyName", req.BusinessDetails.CompanyName},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if !validEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !validPhone(req.Phone) {
		respondError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	customer := &model.Customer{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		PasswordHash:    hash,
		BusinessDetails: req.BusinessDetails,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.customers.CreateCustomer(r.Context(), customer); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		h.logger.Error("customer creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	token, _, err := h.jwtService.GenerateCustomerToken(customer.ID, customer.Email)
	if err != nil {
		h.logger.Error("customer token generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusCreated, map[string]any{
		"token":    token,
		"customer": customer,
	})
}

// Login handles POST /api/customers/login.
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(
		requiredField{"email", req.Email},
		requiredField{"password", req.Password},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	customer, err := h.customers.GetCustomerByEmail(r.Context(), req.Email)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("customer lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if !auth.CheckPassword(req.Password, customer.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, _, err := h.jwtService.GenerateCustomerToken(customer.ID, customer.Email)
	if err != nil {
		h.logger.Error("customer token generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"token":    token,
		"customer": customer,
	})
}

// GetProfile handles GET /api/customers/profile.
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.GetUserID(r.Context())

	customer, err := h.customers.GetCustomer(r.Context(), customerID)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, customer)
}

type updateProfileRequest struct {
	Name            string                `json:"name"`
	Phone           string                `json:"phone"`
	BusinessDetails model.BusinessDetails `json:"businessDetails"`
}

// UpdateProfile handles PUT /api/customers/profile. Email and password are
// not changeable through this endpoint.
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.GetUserID(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(requiredField{"name", req.Name}); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		respondError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}

	customer, err := h.customers.GetCustomer(r.Context(), customerID)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.BusinessDetails = req.BusinessDetails
	customer.UpdatedAt = time.Now()

	if err := h.customers.UpdateCustomer(r.Context(), customer); err != nil {
		h.logger.Error("profile update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, customer)
}
