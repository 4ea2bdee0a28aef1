package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore persists notifications in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, ownerID uuid.UUID, category, message string) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, category, message, is_sent)
		VALUES ($1, $2, $3, $4, FALSE)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.New(), ownerID, category, message)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListUnsent(ctx context.Context, ownerID uuid.UUID) ([]Notification, error) {
	query := `
		SELECT notification_id, user_id, category, message, is_sent, created_at
		FROM notifications
		WHERE user_id = $1 AND is_sent = FALSE
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Category, &n.Message, &n.Sent, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *PostgresStore) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	textIDs := make([]string, len(ids))
	for i, id := range ids {
		textIDs[i] = id.String()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_sent = TRUE WHERE notification_id = ANY($1::uuid[])`, textIDs)
	if err != nil {
		return fmt.Errorf("mark notifications sent: %w", err)
	}
	return nil
}
