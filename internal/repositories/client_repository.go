package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"aeropark/internal/db"
	"aeropark/internal/domain/models"
)

type ClientRepository struct {
	DB *sql.DB
}

const clientColumns = `id, full_name, COALESCE(email, ''), COALESCE(phone_number, ''), created_at`

func scanClient(row *sql.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByEmail returns nil without error when no client matches.
func (r ClientRepository) FindByEmail(email string) (*models.Client, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	row := r.DB.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE email = ? LIMIT 1`, email)
	return scanClient(row)
}

// FindByPhone returns nil without error when no client matches.
func (r ClientRepository) FindByPhone(phone string) (*models.Client, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil
	}
	row := r.DB.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE phone_number = ? LIMIT 1`, phone)
	return scanClient(row)
}

func (r ClientRepository) GetByID(id int64) (*models.Client, error) {
	row := r.DB.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = ? LIMIT 1`, id)
	return scanClient(row)
}

func (r ClientRepository) Create(fullName, email, phone string) (*models.Client, error) {
	res, err := r.DB.Exec(`
		INSERT INTO clients (full_name, email, phone_number)
		VALUES (?, ?, ?)
	`, fullName, db.NullIfEmpty(email), db.NullIfEmpty(phone))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Update applies only the fields present in upd.
func (r ClientRepository) Update(id int64, upd models.ClientUpdate) (*models.Client, error) {
	if upd.Empty() {
		return r.GetByID(id)
	}

	sets := []string{}
	args := []any{}
	if upd.FullName != nil {
		sets = append(sets, "full_name=?")
		args = append(args, *upd.FullName)
	}
	if upd.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, db.NullIfEmpty(*upd.Email))
	}
	if upd.PhoneNumber != nil {
		sets = append(sets, "phone_number=?")
		args = append(args, db.NullIfEmpty(*upd.PhoneNumber))
	}
	args = append(args, id)

	if _, err := r.DB.Exec(`UPDATE clients SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// ListWithReservations returns all clients newest-first, each with its
// reservations embedded.
func (r ClientRepository) ListWithReservations() ([]models.Client, error) {
	rows, err := r.DB.Query(`SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []models.Client{}
	index := map[int64]int{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Reservations = []models.Reservation{}
		index[c.ID] = len(clients)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resRows, err := r.DB.Query(`SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer resRows.Close()

	for resRows.Next() {
		res, err := scanReservationRow(resRows)
		if err != nil {
			return nil, err
		}
		i, ok := index[res.ClientID]
		if !ok {
			return nil, fmt.Errorf("reservation %d references unknown client %d", res.ID, res.ClientID)
		}
		clients[i].Reservations = append(clients[i].Reservations, res)
	}
	return clients, resRows.Err()
}
