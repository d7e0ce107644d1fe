package handlers

import (
	"net/http"

	"aeropark/internal/http/middleware"
	"aeropark/internal/services"

	"github.com/gin-gonic/gin"
)

// reservationForm mirrors the public booking form. Email and phone are
// optional individually; the resolver matches on whichever is present.
type reservationForm struct {
	DateAller          string `form:"dateAller" json:"dateAller" binding:"required"`
	FlightNumberAller  string `form:"flightNumberAller" json:"flightNumberAller" binding:"required"`
	DateRetour         string `form:"dateRetour" json:"dateRetour" binding:"required"`
	FlightNumberRetour string `form:"flightNumberRetour" json:"flightNumberRetour" binding:"required"`
	ParkingType        string `form:"parkingType" json:"parkingType" binding:"required,oneof=externe interne"`
	CleaningType       string `form:"cleaningType" json:"cleaningType" binding:"required,oneof=none exterior interior full"`
	WithFuel           bool   `form:"withFuel" json:"withFuel"`
	IsOversized        bool   `form:"isOversized" json:"isOversized"`
	FullName           string `form:"fullName" json:"fullName" binding:"required"`
	Email              string `form:"email" json:"email" binding:"omitempty,email"`
	PhoneNumber        string `form:"phoneNumber" json:"phoneNumber"`
	CarImmatriculation string `form:"carImmatriculation" json:"carImmatriculation" binding:"required"`
}

// POST /api/reservations
func (a API) CreateReservation(c *gin.Context) {
	var form reservationForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "invalid booking payload")
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.BookingService{
		Clients:      a.clients(),
		Reservations: a.reservations(),
		Bon:          a.bon(reqID),
		Notifier:     a.notifier(reqID),
		AdminEmail:   a.Env.AdminEmail,
		RequestID:    reqID,
	}

	res, err := svc.Create(services.BookingRequest{
		DateAller:          form.DateAller,
		FlightNumberAller:  form.FlightNumberAller,
		DateRetour:         form.DateRetour,
		FlightNumberRetour: form.FlightNumberRetour,
		ParkingType:        form.ParkingType,
		CleaningType:       form.CleaningType,
		WithFuel:           form.WithFuel,
		IsOversized:        form.IsOversized,
		FullName:           form.FullName,
		Email:              form.Email,
		PhoneNumber:        form.PhoneNumber,
		CarImmatriculation: form.CarImmatriculation,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reservation": res})
}
