package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/metrics"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageHandler handles public contact-form submissions and the admin
// message screens.
type MessageHandler struct {
	messages  store.MessageStore
	publisher event.Publisher
	metrics   *metrics.Collector
	logger    *zap.Logger
}

func NewMessageHandler(messages store.MessageStore, publisher event.Publisher, collector *metrics.Collector, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, publisher: publisher, metrics: collector, logger: logger}
}

type messageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/messages (public contact form).
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := requireFields(
		requiredField{"name", req.Name},
		requiredField{"email", req.Email},
		requiredField{"message", req.Message},
	); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if !validEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	message := &model.Message{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Body:      req.Message,
		CreatedAt: time.Now(),
	}

	if err := h.messages.CreateMessage(r.Context(), message); err != nil {
		h.logger.Error("message creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	err := h.publisher.Publish(r.Context(), event.TypeMessageReceived, event.MessageReceived{
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
	})
	if h.metrics != nil {
		h.metrics.RecordEventPublished(event.TypeMessageReceived, err)
	}
	if err != nil {
		h.logger.Error("event publish failed", zap.Error(err))
	}

	respondMessage(w, http.StatusCreated, "Message sent, we will get back to you soon")
}

// List handles GET /api/messages (admin).
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.ListMessages(r.Context())
	if err != nil {
		h.logger.Error("message listing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	respondData(w, http.StatusOK, messages)
}

// Get handles GET /api/messages/{id} (admin) and marks the message read.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	message, err := h.messages.GetMessage(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		h.logger.Error("message lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	if !message.Read {
		if err := h.messages.MarkMessageRead(r.Context(), id); err != nil {
			h.logger.Error("mark message read failed", zap.Error(err))
		} else {
			message.Read = true
		}
	}

	respondData(w, http.StatusOK, message)
}

// Delete handles DELETE /api/messages/{id} (admin).
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.messages.DeleteMessage(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		h.logger.Error("message deletion failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondMessage(w, http.StatusOK, "Message deleted")
}
