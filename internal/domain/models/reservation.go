package models

import "time"

// Parking types as sent by the booking form.
const (
	ParkingExterne = "externe"
	ParkingInterne = "interne"
)

// Cleaning types as sent by the booking form.
const (
	CleaningNone     = "none"
	CleaningExterior = "exterior"
	CleaningInterior = "interior"
	CleaningFull     = "full"
)

// Reservation is one parking booking. TotalPrice is always computed
// server-side. Status is a free-form string set from the dashboard.
type Reservation struct {
	ID                 int64     `json:"id"`
	ReservationNumber  string    `json:"reservationNumber"`
	ClientID           int64     `json:"clientId"`
	DateAller          time.Time `json:"dateAller"`
	FlightNumberAller  string    `json:"flightNumberAller"`
	DateRetour         time.Time `json:"dateRetour"`
	FlightNumberRetour string    `json:"flightNumberRetour"`
	ParkingType        string    `json:"parkingType"`
	CleaningType       string    `json:"cleaningType"`
	WithFuel           bool      `json:"withFuel"`
	IsOversized        bool      `json:"isOversized"`
	CarImmatriculation string    `json:"carImmatriculation"`
	TotalPrice         int64     `json:"totalPrice"`
	Status             string    `json:"status"`
	BonPath            string    `json:"bonPath,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	Client             *Client   `json:"client,omitempty"`
}
