package mail

import (
	"context"
	"fmt"
	"time"

	"aeropark/internal/repositories"
	"aeropark/internal/utils"
)

// OutboxWorker periodically resends queued emails whose first delivery
// attempt failed. Business mutations never wait on it.
type OutboxWorker struct {
	Outbox   repositories.OutboxRepository
	Mailer   Sender
	Interval time.Duration
	Batch    int
}

func (w OutboxWorker) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	batch := w.Batch
	if batch <= 0 {
		batch = 20
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(batch)
		}
	}
}

func (w OutboxWorker) drain(batch int) {
	pending, err := w.Outbox.ListPending(batch)
	if err != nil {
		utils.LogEvent("", "outbox", "list_pending", err.Error())
		return
	}
	for _, m := range pending {
		err := w.Mailer.Send(Message{
			To:         m.Recipient,
			Subject:    m.Subject,
			Body:       m.Body,
			Attachment: m.Attachment,
		})
		if err != nil {
			_ = w.Outbox.MarkFailed(m.ID, err.Error())
			utils.LogEvent("", "outbox", "retry_failed", fmt.Sprintf("id=%d attempts=%d err=%v", m.ID, m.Attempts+1, err))
			continue
		}
		_ = w.Outbox.MarkSent(m.ID)
		utils.LogEvent("", "outbox", "retry_sent", fmt.Sprintf("id=%d", m.ID))
	}
}
