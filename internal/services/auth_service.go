package services

import (
	"time"

	"aeropark/internal/domain"
	"aeropark/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	FindByUsername(username string) (*models.User, error)
}

// tokenTTL is the fixed credential lifetime.
const tokenTTL = time.Hour

// AuthService issues and verifies the signed dashboard credential.
type AuthService struct {
	Users  userStore
	Secret []byte
}

// Login checks the password against the stored bcrypt hash and issues an
// HS256 token embedding the account id and role.
func (s AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "user lookup failed", Err: err}
	}
	if user == nil {
		return nil, "", domain.AuthError{Msg: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.AuthError{Msg: "Invalid credentials"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return user, signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
func (s AuthService) Verify(raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.AuthError{Msg: "unexpected signing method"}
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.AuthError{Msg: "Invalid token", Err: err}
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.AuthError{Msg: "Invalid token"}
	}
	return claims, nil
}
