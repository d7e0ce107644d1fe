package handlers

import (
	"net/http"

	"aeropark/internal/domain"
	"aeropark/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (a API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, token, err := a.auth().Login(req.Username, req.Password)
	if err != nil {
		if domain.IsAuth(err) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
		"token": token,
	})
}

// GET /api/auth/verify
func (a API) VerifyToken(c *gin.Context) {
	raw := middleware.BearerToken(c)
	if raw == "" {
		respondError(c, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := a.auth().Verify(raw)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid", "decoded": claims})
}
