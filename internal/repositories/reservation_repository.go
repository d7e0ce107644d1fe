package repositories

import (
	"database/sql"
	"errors"
	"time"

	"aeropark/internal/db"
	"aeropark/internal/domain/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

const reservationColumns = `id, reservation_number, client_id,
	date_aller, flight_number_aller, date_retour, flight_number_retour,
	parking_type, cleaning_type, with_fuel, is_oversized,
	car_immatriculation, total_price, status, COALESCE(bon_path, ''), created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationRow(row rowScanner) (models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(
		&res.ID, &res.ReservationNumber, &res.ClientID,
		&res.DateAller, &res.FlightNumberAller, &res.DateRetour, &res.FlightNumberRetour,
		&res.ParkingType, &res.CleaningType, &res.WithFuel, &res.IsOversized,
		&res.CarImmatriculation, &res.TotalPrice, &res.Status, &res.BonPath, &res.CreatedAt,
	)
	return res, err
}

// NumberExists reports whether a reservation number is already taken.
func (r ReservationRepository) NumberExists(number string) (bool, error) {
	var one int
	err := r.DB.QueryRow(`SELECT 1 FROM reservations WHERE reservation_number = ? LIMIT 1`, number).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountOverlapping counts the client's reservations whose [aller, retour)
// window overlaps the candidate one.
func (r ReservationRepository) CountOverlapping(clientID int64, dateAller, dateRetour time.Time) (int, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM reservations
		WHERE client_id = ? AND date_aller < ? AND date_retour > ?
	`, clientID, dateRetour, dateAller).Scan(&n)
	return n, err
}

// Insert persists the reservation and fills in its ID and CreatedAt.
func (r ReservationRepository) Insert(res *models.Reservation) error {
	now := time.Now()
	out, err := r.DB.Exec(`
		INSERT INTO reservations (
			reservation_number, client_id,
			date_aller, flight_number_aller, date_retour, flight_number_retour,
			parking_type, cleaning_type, with_fuel, is_oversized,
			car_immatriculation, total_price, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		res.ReservationNumber, res.ClientID,
		res.DateAller, res.FlightNumberAller, res.DateRetour, res.FlightNumberRetour,
		res.ParkingType, res.CleaningType, res.WithFuel, res.IsOversized,
		res.CarImmatriculation, res.TotalPrice, res.Status, now,
	)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = id
	res.CreatedAt = now
	return nil
}

func (r ReservationRepository) UpdateBonPath(id int64, path string) error {
	_, err := r.DB.Exec(`UPDATE reservations SET bon_path=? WHERE id=?`, db.NullIfEmpty(path), id)
	return err
}

// UpdateStatus sets the free-form status and reports whether the row exists.
func (r ReservationRepository) UpdateStatus(id int64, status string) (bool, error) {
	out, err := r.DB.Exec(`UPDATE reservations SET status=? WHERE id=?`, status, id)
	if err != nil {
		return false, err
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}
	// Setting the same status twice affects zero rows; check existence.
	var one int
	err = r.DB.QueryRow(`SELECT 1 FROM reservations WHERE id=? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r ReservationRepository) GetByID(id int64) (*models.Reservation, error) {
	row := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = ? LIMIT 1`, id)
	res, err := scanReservationRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByIDWithClient loads a reservation and embeds its client.
func (r ReservationRepository) GetByIDWithClient(id int64) (*models.Reservation, error) {
	res, err := r.GetByID(id)
	if err != nil || res == nil {
		return res, err
	}
	client, err := ClientRepository{DB: r.DB}.GetByID(res.ClientID)
	if err != nil {
		return nil, err
	}
	res.Client = client
	return res, nil
}

// ListWithClients returns all reservations newest-first with their client
// embedded.
func (r ReservationRepository) ListWithClients() ([]models.Reservation, error) {
	rows, err := r.DB.Query(`
		SELECT r.id, r.reservation_number, r.client_id,
			r.date_aller, r.flight_number_aller, r.date_retour, r.flight_number_retour,
			r.parking_type, r.cleaning_type, r.with_fuel, r.is_oversized,
			r.car_immatriculation, r.total_price, r.status, COALESCE(r.bon_path, ''), r.created_at,
			c.id, c.full_name, COALESCE(c.email, ''), COALESCE(c.phone_number, ''), c.created_at
		FROM reservations r
		JOIN clients c ON c.id = r.client_id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		var c models.Client
		if err := rows.Scan(
			&res.ID, &res.ReservationNumber, &res.ClientID,
			&res.DateAller, &res.FlightNumberAller, &res.DateRetour, &res.FlightNumberRetour,
			&res.ParkingType, &res.CleaningType, &res.WithFuel, &res.IsOversized,
			&res.CarImmatriculation, &res.TotalPrice, &res.Status, &res.BonPath, &res.CreatedAt,
			&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		res.Client = &c
		out = append(out, res)
	}
	return out, rows.Err()
}
