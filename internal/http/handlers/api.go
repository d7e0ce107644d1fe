package handlers

import (
	"database/sql"

	"aeropark/internal/config"
	"aeropark/internal/mail"
	"aeropark/internal/repositories"
	"aeropark/internal/services"
)

// API carries the shared collaborators and hands each handler the narrow
// repositories and services it needs, instead of reaching into globals.
type API struct {
	Env    config.Env
	DB     *sql.DB
	Mailer mail.Sender
}

func (a API) clients() repositories.ClientRepository {
	return repositories.ClientRepository{DB: a.DB}
}

func (a API) reservations() repositories.ReservationRepository {
	return repositories.ReservationRepository{DB: a.DB}
}

func (a API) users() repositories.UserRepository {
	return repositories.UserRepository{DB: a.DB}
}

func (a API) auth() services.AuthService {
	return services.AuthService{Users: a.users(), Secret: []byte(a.Env.JWTSecret)}
}

func (a API) notifier(requestID string) services.NotifyService {
	return services.NotifyService{
		Outbox:    repositories.OutboxRepository{DB: a.DB},
		Mailer:    a.Mailer,
		RequestID: requestID,
	}
}

func (a API) bon(requestID string) services.BonService {
	return services.BonService{Dir: a.Env.BonDir, RequestID: requestID}
}
