package handlers

import (
	"net/http"

	"aeropark/internal/domain"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondDomainError maps domain errors onto the API's status contract.
// Conflicts (double booking, uniqueness races) report as 400 like plain
// validation failures; clients see one class of "bad request".
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), domain.IsConflict(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
