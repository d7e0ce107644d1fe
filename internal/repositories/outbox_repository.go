package repositories

import (
	"database/sql"
	"time"

	"aeropark/internal/db"
)

// OutboxEmail is a queued notification. Rows stay pending until a send
// succeeds so delivery failures never roll back the business mutation
// that triggered them.
type OutboxEmail struct {
	ID         int64
	Recipient  string
	Subject    string
	Body       string
	Attachment string
	Status     string
	Attempts   int
	LastError  string
	CreatedAt  time.Time
}

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
)

type OutboxRepository struct {
	DB *sql.DB
}

func (r OutboxRepository) Enqueue(recipient, subject, body, attachment string) (int64, error) {
	out, err := r.DB.Exec(`
		INSERT INTO email_outbox (recipient, subject, body, attachment, status)
		VALUES (?, ?, ?, ?, ?)
	`, recipient, subject, body, db.NullIfEmpty(attachment), OutboxPending)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

func (r OutboxRepository) MarkSent(id int64) error {
	_, err := r.DB.Exec(`
		UPDATE email_outbox SET status=?, sent_at=NOW(), attempts=attempts+1 WHERE id=?
	`, OutboxSent, id)
	return err
}

func (r OutboxRepository) MarkFailed(id int64, sendErr string) error {
	_, err := r.DB.Exec(`
		UPDATE email_outbox SET attempts=attempts+1, last_error=? WHERE id=?
	`, sendErr, id)
	return err
}

// ListPending returns queued emails oldest-first for the retry worker.
func (r OutboxRepository) ListPending(limit int) ([]OutboxEmail, error) {
	rows, err := r.DB.Query(`
		SELECT id, recipient, subject, body, COALESCE(attachment, ''), status, attempts, COALESCE(last_error, ''), created_at
		FROM email_outbox
		WHERE status = ?
		ORDER BY id ASC
		LIMIT ?
	`, OutboxPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OutboxEmail{}
	for rows.Next() {
		var m OutboxEmail
		if err := rows.Scan(&m.ID, &m.Recipient, &m.Subject, &m.Body, &m.Attachment, &m.Status, &m.Attempts, &m.LastError, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
