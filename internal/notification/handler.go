// Package notification turns consumed events into outgoing email.
package notification

import (
	"context"

	"github.com/MohamadRiza/happytime/internal/email"
	"github.com/MohamadRiza/happytime/internal/event"
	"go.uber.org/zap"
)

// Handler processes events for sending notifications.
type Handler struct {
	emailService *email.Service
	careersInbox string
	logger       *zap.Logger
}

func NewHandler(emailSvc *email.Service, careersInbox string, logger *zap.Logger) *Handler {
	return &Handler{
		emailService: emailSvc,
		careersInbox: careersInbox,
		logger:       logger,
	}
}

// HandleEvent dispatches a consumed envelope. Unknown event types are
// ignored so the notifier can lag behind the producer's vocabulary.
func (h *Handler) HandleEvent(ctx context.Context, env event.Envelope) error {
	switch env.Type {
	case event.TypeApplicationSubmitted:
		return h.handleApplicationSubmitted(env)
	case event.TypeApplicationStatusChanged:
		return h.handleStatusChanged(env)
	case event.TypeMessageReceived:
		return h.handleMessageReceived(env)
	}
	return nil
}

func (h *Handler) handleApplicationSubmitted(env event.Envelope) error {
	var e event.ApplicationSubmitted
	if err := env.Decode(&e); err != nil {
		h.logger.Error("failed to decode ApplicationSubmitted", zap.Error(err))
		return err
	}

	h.logger.Info("processing application submitted",
		zap.String("application_id", e.ApplicationID),
		zap.String("code", e.ApplicationCode))

	if err := h.emailService.SendApplicationReceipt(e.Email, e.Name, e.VacancyTitle, e.ApplicationCode); err != nil {
		h.logger.Error("failed to send applicant receipt", zap.Error(err))
	}
	if err := h.emailService.SendApplicationAlert(h.careersInbox, e.Name, e.Email, e.VacancyTitle, e.ApplicationCode); err != nil {
		h.logger.Error("failed to send careers alert", zap.Error(err))
	}
	return nil
}

func (h *Handler) handleStatusChanged(env event.Envelope) error {
	var e event.ApplicationStatusChanged
	if err := env.Decode(&e); err != nil {
		h.logger.Error("failed to decode ApplicationStatusChanged", zap.Error(err))
		return err
	}

	return h.emailService.SendStatusUpdate(e.Email, e.Name, e.ApplicationCode, e.NewStatus)
}

func (h *Handler) handleMessageReceived(env event.Envelope) error {
	var e event.MessageReceived
	if err := env.Decode(&e); err != nil {
		h.logger.Error("failed to decode MessageReceived", zap.Error(err))
		return err
	}

	h.logger.Info("contact message received",
		zap.String("message_id", e.MessageID),
		zap.String("subject", e.Subject))
	return nil
}
