package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// CleanContactInbox deletes contact messages created before now-retention
// and returns how many rows were removed.
func CleanContactInbox(ctx context.Context, db *sql.DB, retention time.Duration, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `
        DELETE FROM contact_messages
         WHERE created_at < $1
    `, now.Add(-retention))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartInboxCleaner runs CleanContactInbox every interval until ctx is
// canceled. The returned channel is closed once the goroutine exits.
func StartInboxCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rows, err := CleanContactInbox(ctx, db, retention, time.Now())
				if err != nil {
					log.Error("failed to clean contact inbox", zap.Error(err))
					continue
				}
				if rows > 0 {
					log.Info("cleaned contact inbox", zap.Int64("removed", rows))
				}
			}
		}
	}()
	return done
}
