package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/LocalSites/internal/models"
)

const insertContactSQL = `INSERT INTO contact_messages (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`

func setupContactMock(t *testing.T) (*PostgresContactRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresContactRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestSaveContact_Success(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	msg := models.ContactMessage{
		ID:        "c1",
		Name:      "Ann",
		Email:     "ann@example.com",
		Message:   "Hello",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	mock.ExpectExec(regexp.QuoteMeta(insertContactSQL)).
		WithArgs(msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveContact(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveContact_Error(t *testing.T) {
	repo, mock, cleanup := setupContactMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertContactSQL)).
		WillReturnError(errors.New("insert failed"))

	err := repo.SaveContact(context.Background(), models.ContactMessage{ID: "c2"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
