package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"aeropark/internal/http/middleware"
	"aeropark/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/reservations
func (a API) ListReservations(c *gin.Context) {
	reservations, err := a.reservations().ListWithClients()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list reservations: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GET /api/dashboard/clients
func (a API) ListClients(c *gin.Context) {
	clients, err := a.clients().ListWithReservations()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list clients: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GET /api/dashboard/download-bon/:id
func (a API) DownloadBon(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid reservation id")
		return
	}

	res, err := a.reservations().GetByIDWithClient(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load reservation: "+err.Error())
		return
	}
	if res == nil {
		respondError(c, http.StatusNotFound, "reservation not found")
		return
	}

	if res.BonPath != "" {
		if _, statErr := os.Stat(res.BonPath); statErr == nil {
			c.FileAttachment(res.BonPath, filepath.Base(res.BonPath))
			return
		}
	}

	// The stored artifact is missing; rebuild it from the record.
	pdfBytes, filename, err := a.bon(middleware.GetRequestID(c)).Generate(*res, *res.Client)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate order form: "+err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/dashboard/reservations/:id/status
func (a API) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid reservation id")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.StatusService{
		Reservations: a.reservations(),
		Notifier:     a.notifier(reqID),
		RequestID:    reqID,
	}

	res, info, err := svc.UpdateStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": res, "info": info})
}
