package services

import (
	"fmt"

	"aeropark/internal/domain"
	"aeropark/internal/domain/models"
	"aeropark/internal/utils"
)

type statusStore interface {
	UpdateStatus(id int64, status string) (bool, error)
	GetByIDWithClient(id int64) (*models.Reservation, error)
}

// StatusService applies an admin status change and notifies the client.
// The email is attempted only after the mutation succeeds and a delivery
// failure never rolls the status back.
type StatusService struct {
	Reservations statusStore
	Notifier     notifier
	RequestID    string
}

// UpdateStatus returns the updated reservation together with a short
// delivery report for the notification email. Status values are
// deliberately free-form; the dashboard owns their meaning.
func (s StatusService) UpdateStatus(id int64, status string) (*models.Reservation, string, error) {
	found, err := s.Reservations.UpdateStatus(id, status)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "status update failed", Err: err}
	}
	if !found {
		return nil, "", domain.NotFoundError{Resource: "reservation"}
	}

	res, err := s.Reservations.GetByIDWithClient(id)
	if err != nil || res == nil {
		return nil, "", domain.InternalError{Msg: "failed to reload reservation", Err: err}
	}

	utils.LogEvent(s.RequestID, "status", "updated", fmt.Sprintf("reservation=%s status=%s", res.ReservationNumber, status))

	info := "no client email on file"
	if s.Notifier != nil && res.Client != nil && res.Client.Email != "" {
		body := fmt.Sprintf("Dear %s,\n\nYour reservation status has been updated to: %s.\n\nThank you for using our service!\n\nBest regards,\nAero Park Team",
			res.Client.FullName, status)
		sent, err := s.Notifier.Notify(res.Client.Email, "Reservation Status Updated", body, "")
		if err != nil {
			utils.LogEvent(s.RequestID, "status", "mail_failed", err.Error())
			info = "notification could not be queued"
		} else {
			info = sent
		}
	}

	return res, info, nil
}
