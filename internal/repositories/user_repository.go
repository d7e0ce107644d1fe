package repositories

import (
	"database/sql"
	"errors"

	"aeropark/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

// FindByUsername returns the user with its password hash, or nil when
// no account matches.
func (r UserRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, username, password_hash, role
		FROM users
		WHERE username = ?
		LIMIT 1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an account. Used only by the startup admin seed.
func (r UserRepository) Create(username, passwordHash, role string) (int64, error) {
	out, err := r.DB.Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, username, passwordHash, role)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}
