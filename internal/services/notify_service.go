package services

import (
	"fmt"

	"aeropark/internal/domain"
	"aeropark/internal/mail"
	"aeropark/internal/utils"
)

type outboxStore interface {
	Enqueue(recipient, subject, body, attachment string) (int64, error)
	MarkSent(id int64) error
	MarkFailed(id int64, sendErr string) error
}

// NotifyService queues an email and attempts immediate delivery. A failed
// attempt leaves the row pending for the outbox worker, so callers can
// treat delivery as best-effort.
type NotifyService struct {
	Outbox    outboxStore
	Mailer    mail.Sender
	RequestID string
}

// Notify returns a short human-readable delivery result. The error is
// only non-nil when the message could not even be queued.
func (s NotifyService) Notify(to, subject, body, attachment string) (string, error) {
	id, err := s.Outbox.Enqueue(to, subject, body, attachment)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to queue notification", Err: err}
	}

	if err := s.Mailer.Send(mail.Message{To: to, Subject: subject, Body: body, Attachment: attachment}); err != nil {
		_ = s.Outbox.MarkFailed(id, err.Error())
		utils.LogEvent(s.RequestID, "notify", "send_failed", fmt.Sprintf("outbox_id=%d to=%s err=%v", id, to, err))
		return fmt.Sprintf("delivery to %s deferred: %v", to, err), nil
	}

	_ = s.Outbox.MarkSent(id)
	utils.LogEvent(s.RequestID, "notify", "sent", fmt.Sprintf("outbox_id=%d to=%s", id, to))
	return fmt.Sprintf("sent to %s", to), nil
}
