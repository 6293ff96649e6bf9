package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeContactService struct {
	got service.ContactRequest
	err error
}

func (f *fakeContactService) Submit(ctx context.Context, req service.ContactRequest) (models.ContactMessage, error) {
	f.got = req
	return models.ContactMessage{ID: "m1", Name: req.Name}, f.err
}

func TestContactHandler_AlwaysSucceeds(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		svcErr      error
		wantReq     service.ContactRequest
		wantLog     string
	}{
		{
			name:        "json",
			body:        `{"name":"Ann","email":"ann@example.com","message":"Hi"}`,
			contentType: "application/json",
			wantReq:     service.ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "Hi"},
		},
		{
			name:        "form",
			body:        "name=Bob&message=Quote",
			contentType: "application/x-www-form-urlencoded",
			wantReq:     service.ContactRequest{Name: "Bob", Message: "Quote"},
		},
		{
			name:        "plain text reads as empty",
			body:        `{"name":"Ann"}`,
			contentType: "text/plain",
		},
		{
			name:        "garbage",
			body:        "{{{",
			contentType: "application/json",
			wantLog:     "unreadable contact payload",
		},
		{
			name:        "storage failure",
			body:        `{"name":"Cy"}`,
			contentType: "application/json",
			svcErr:      errors.New("db down"),
			wantReq:     service.ContactRequest{Name: "Cy"},
			wantLog:     "failed to store contact message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			svc := &fakeContactService{err: tt.svcErr}
			h := &ContactHandler{ContactService: svc, Logger: zap.New(core)}

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			h.Contact(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"success":true,"message":"Thank you for your message! We will get back to you soon."}`, rec.Body.String())
			assert.Equal(t, tt.wantReq, svc.got)
			if tt.wantLog != "" {
				assert.Equal(t, 1, logs.FilterMessage(tt.wantLog).Len())
			} else {
				assert.Zero(t, logs.Len())
			}
		})
	}
}
