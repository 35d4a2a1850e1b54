package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MohamadRiza/happytime/internal/auth"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"go.uber.org/zap"
)

// AdminAuthHandler handles console admin authentication.
type AdminAuthHandler struct {
	admins     store.AdminStore
	jwtService *auth.JWTService
	logger     *zap.Logger
}

func NewAdminAuthHandler(admins store.AdminStore, jwtService *auth.JWTService, logger *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{admins: admins, jwtService: jwtService, logger: logger}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/admin/login. The response carries the token
// and user record at the top level of the envelope.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(
		requiredField{"username", req.Username},
		requiredField{"password", req.Password},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	admin, err := h.admins.GetAdminByUsername(r.Context(), req.Username)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.logger.Error("admin lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if !auth.CheckPassword(req.Password, admin.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, _, err := h.jwtService.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		h.logger.Error("admin token generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondFields(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  admin,
	})
}
