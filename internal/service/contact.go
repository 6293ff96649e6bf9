package service

import (
	"context"
	"time"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactThanks is the reply to every contact form submission.
const ContactThanks = "Thank you for your message! We will get back to you soon."

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	// SaveContact persists a single message.
	SaveContact(ctx context.Context, msg models.ContactMessage) error
}

// ContactRequest is the body of a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactService accepts contact form submissions. Every submission is
// logged; it is also stored when an inbox repository is configured.
type ContactService struct {
	repo ContactRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewContactService constructs a ContactService. repo may be nil.
func NewContactService(repo ContactRepository, log *zap.Logger) *ContactService {
	return &ContactService{repo: repo, log: log, now: time.Now}
}

// Submit records req and returns the stored message. A storage failure
// is returned alongside the message; callers still treat the submission
// as accepted.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}

	s.log.Info("contact form submission",
		zap.String("id", msg.ID),
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("message", msg.Message),
	)

	if s.repo == nil {
		return msg, nil
	}
	return msg, s.repo.SaveContact(ctx, msg)
}
