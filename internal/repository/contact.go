package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/LocalSites/internal/models"
)

// PostgresContactRepository records contact form submissions in PostgreSQL.
type PostgresContactRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresContactRepository creates a PostgresContactRepository with the
// given database connection.
func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{DB: db}
}

// SaveContact inserts msg into the inbox. Duplicate IDs are ignored.
func (r *PostgresContactRepository) SaveContact(ctx context.Context, msg models.ContactMessage) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("SaveContact: %w", err)
	}
	return nil
}
