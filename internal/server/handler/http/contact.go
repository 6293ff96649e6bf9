package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
	"go.uber.org/zap"
)

// ContactService defines the contact form intake used by ContactHandler.
type ContactService interface {
	Submit(ctx context.Context, req service.ContactRequest) (models.ContactMessage, error)
}

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	ContactService ContactService
	Logger         *zap.Logger
}

// Contact handles POST /api/contact. Every payload, including an
// unreadable one, is acknowledged with success=true.
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := decodeBody(r, &req); err != nil {
		h.Logger.Warn("unreadable contact payload", zap.Error(err))
	}

	if msg, err := h.ContactService.Submit(r.Context(), req); err != nil {
		h.Logger.Error("failed to store contact message", zap.String("id", msg.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: service.ContactThanks})
}
