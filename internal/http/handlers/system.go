package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a API) DBCheck(c *gin.Context) {
	if a.DB == nil {
		respondError(c, http.StatusInternalServerError, "database not connected")
		return
	}
	var count int
	if err := a.DB.QueryRow("SELECT COUNT(*) FROM reservations").Scan(&count); err != nil {
		respondError(c, http.StatusInternalServerError, "database query failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "reservations_in_db": count})
}
