package services

import (
	"strings"

	"aeropark/internal/domain"
	"aeropark/internal/domain/models"
)

type clientStore interface {
	FindByEmail(email string) (*models.Client, error)
	FindByPhone(phone string) (*models.Client, error)
	Create(fullName, email, phone string) (*models.Client, error)
	Update(id int64, upd models.ClientUpdate) (*models.Client, error)
}

// ResolveClient finds the client the booking belongs to, matching by
// email first and phone second, and reconciles its record: the name
// follows the latest booking, a missing email or phone is filled in, and
// a non-empty value is never overwritten with a different one. When
// nothing matches a new client is created.
func ResolveClient(store clientStore, fullName, email, phone string) (*models.Client, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	client, err := store.FindByEmail(email)
	if err != nil {
		return nil, domain.InternalError{Msg: "client lookup failed", Err: err}
	}
	if client == nil {
		client, err = store.FindByPhone(phone)
		if err != nil {
			return nil, domain.InternalError{Msg: "client lookup failed", Err: err}
		}
	}

	if client == nil {
		created, err := store.Create(fullName, email, phone)
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	var upd models.ClientUpdate
	if fullName != "" && client.FullName != fullName {
		upd.FullName = &fullName
	}
	if client.Email == "" && email != "" {
		upd.Email = &email
	}
	if client.PhoneNumber == "" && phone != "" {
		upd.PhoneNumber = &phone
	}
	if upd.Empty() {
		return client, nil
	}

	updated, err := store.Update(client.ID, upd)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
