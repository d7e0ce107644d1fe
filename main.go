package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aeropark/internal/config"
	"aeropark/internal/db"
	router "aeropark/internal/http"
	"aeropark/internal/mail"
	"aeropark/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := config.ConnectDB(env)
	defer config.CloseDB()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}
	seedAdmin(env)

	mailer := mail.NewSMTPMailer(env)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker := mail.OutboxWorker{
		Outbox:   repositories.OutboxRepository{DB: conn},
		Mailer:   mailer,
		Interval: time.Minute,
	}
	go worker.Run(workerCtx)

	r := router.NewRouter(env, conn, mailer)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}

// seedAdmin creates the dashboard account once when ADMIN_USERNAME and
// ADMIN_PASSWORD are set. Accounts are otherwise managed out-of-band.
func seedAdmin(env config.Env) {
	if env.AdminUsername == "" || env.AdminPassword == "" {
		return
	}

	users := repositories.UserRepository{DB: config.DB}
	existing, err := users.FindByUsername(env.AdminUsername)
	if err != nil {
		log.Printf("admin seed lookup failed: %v", err)
		return
	}
	if existing != nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(env.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin seed hash failed: %v", err)
		return
	}
	if _, err := users.Create(env.AdminUsername, string(hash), "admin"); err != nil {
		log.Printf("admin seed insert failed: %v", err)
		return
	}
	log.Printf("seeded admin user %q", env.AdminUsername)
}
