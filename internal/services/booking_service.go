package services

import (
	"fmt"
	"time"

	"aeropark/internal/db"
	"aeropark/internal/domain"
	"aeropark/internal/domain/models"
	"aeropark/internal/utils"
)

// BookingRequest carries the booking form fields after HTTP binding.
type BookingRequest struct {
	DateAller          string
	FlightNumberAller  string
	DateRetour         string
	FlightNumberRetour string
	ParkingType        string
	CleaningType       string
	WithFuel           bool
	IsOversized        bool
	FullName           string
	Email              string
	PhoneNumber        string
	CarImmatriculation string
}

type reservationStore interface {
	numberStore
	CountOverlapping(clientID int64, dateAller, dateRetour time.Time) (int, error)
	Insert(res *models.Reservation) error
	UpdateBonPath(id int64, path string) error
}

type bonRenderer interface {
	Render(res models.Reservation, client models.Client) (string, error)
}

type notifier interface {
	Notify(to, subject, body, attachment string) (string, error)
}

// BookingService runs the reservation workflow: validate dates, resolve
// the client, guard against double booking, price the stay, derive the
// reservation number, persist, render the bon de commande and send the
// confirmation emails. Steps run strictly in this order and nothing
// already written is rolled back on a later failure.
type BookingService struct {
	Clients      clientStore
	Reservations reservationStore
	Bon          bonRenderer
	Notifier     notifier
	AdminEmail   string
	RequestID    string
}

func (s BookingService) Create(req BookingRequest) (*models.Reservation, error) {
	dateAller, errAller := utils.ParseFormDate(req.DateAller)
	dateRetour, errRetour := utils.ParseFormDate(req.DateRetour)
	if errAller != nil || errRetour != nil || !dateRetour.After(dateAller) {
		return nil, domain.ValidationError{Msg: "Invalid dates"}
	}

	client, err := ResolveClient(s.Clients, req.FullName, req.Email, req.PhoneNumber)
	if err != nil {
		if db.IsDuplicate(err) {
			return nil, domain.ConflictError{Msg: "Unique constraint violation (email or phone already exists)", Err: err}
		}
		return nil, err
	}

	overlapping, err := s.Reservations.CountOverlapping(client.ID, dateAller, dateRetour)
	if err != nil {
		return nil, domain.InternalError{Msg: "availability check failed", Err: err}
	}
	if overlapping > 0 {
		return nil, domain.ConflictError{Msg: "You already have a reservation in this period"}
	}

	days := utils.StayDays(dateAller, dateRetour)
	totalPrice := ComputePrice(days, req.ParkingType, req.IsOversized, req.CleaningType, req.WithFuel)

	number, err := GenerateReservationNumber(s.Reservations, dateAller, req.FlightNumberAller)
	if err != nil {
		return nil, err
	}

	res := &models.Reservation{
		ReservationNumber:  number,
		ClientID:           client.ID,
		DateAller:          dateAller,
		FlightNumberAller:  req.FlightNumberAller,
		DateRetour:         dateRetour,
		FlightNumberRetour: req.FlightNumberRetour,
		ParkingType:        req.ParkingType,
		CleaningType:       req.CleaningType,
		WithFuel:           req.WithFuel,
		IsOversized:        req.IsOversized,
		CarImmatriculation: req.CarImmatriculation,
		TotalPrice:         totalPrice,
		Status:             "pending",
	}
	if err := s.Reservations.Insert(res); err != nil {
		if db.IsDuplicate(err) {
			// Lost a race on the unique reservation number index.
			return nil, domain.ConflictError{Resource: "reservation number", Msg: "already taken", Err: err}
		}
		return nil, domain.InternalError{Msg: "failed to persist reservation", Err: err}
	}
	res.Client = client

	bonPath, err := s.Bon.Render(*res, *client)
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.UpdateBonPath(res.ID, bonPath); err != nil {
		return nil, domain.InternalError{Msg: "failed to record order form path", Err: err}
	}
	res.BonPath = bonPath

	s.sendConfirmations(res, client)

	utils.LogEvent(s.RequestID, "booking", "created", fmt.Sprintf("number=%s client=%d total=%d", number, client.ID, totalPrice))
	return res, nil
}

// sendConfirmations emails the client and the operator with the bon
// attached. Delivery is best-effort: failures stay in the outbox and do
// not fail the booking.
func (s BookingService) sendConfirmations(res *models.Reservation, client *models.Client) {
	if s.Notifier == nil {
		return
	}

	if client.Email != "" {
		body := fmt.Sprintf("Votre réservation %s pour un total de %d DZD a été créée avec succès.",
			res.ReservationNumber, res.TotalPrice)
		if _, err := s.Notifier.Notify(client.Email, "Confirmation de votre réservation", body, res.BonPath); err != nil {
			utils.LogEvent(s.RequestID, "booking", "client_mail_failed", err.Error())
		}
	}

	if s.AdminEmail != "" {
		body := fmt.Sprintf("Une nouvelle réservation a été créée par %s. Numéro: %s, Total: %d DZD.",
			client.FullName, res.ReservationNumber, res.TotalPrice)
		if _, err := s.Notifier.Notify(s.AdminEmail, "Nouvelle réservation créée", body, res.BonPath); err != nil {
			utils.LogEvent(s.RequestID, "booking", "admin_mail_failed", err.Error())
		}
	}
}
