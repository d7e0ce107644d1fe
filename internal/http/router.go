package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	"aeropark/internal/config"
	h "aeropark/internal/http/handlers"
	"aeropark/internal/http/middleware"
	"aeropark/internal/mail"
	"aeropark/internal/repositories"
	"aeropark/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, db *sql.DB, mailer mail.Sender) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	app := h.API{Env: env, DB: db, Mailer: mailer}
	authSvc := services.AuthService{
		Users:  repositories.UserRepository{DB: db},
		Secret: []byte(env.JWTSecret),
	}

	api := r.Group("/api")
	{
		api.GET("/health", app.Health)
		api.GET("/db-check", app.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", app.Login)
		auth.GET("/verify", app.VerifyToken)

		// Public booking endpoint
		api.POST("/reservations", app.CreateReservation)

		// Admin dashboard
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.Authenticate(authSvc), middleware.RequireRole("admin"))
		dashboard.GET("/reservations", app.ListReservations)
		dashboard.GET("/clients", app.ListClients)
		dashboard.GET("/download-bon/:id", app.DownloadBon)
		dashboard.PUT("/reservations/:id/status", app.UpdateReservationStatus)
	}

	return r
}
