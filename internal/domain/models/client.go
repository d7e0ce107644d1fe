package models

import "time"

// Client is the owner of zero or more reservations. Email and phone are
// unique across clients when present.
type Client struct {
	ID           int64         `json:"id"`
	FullName     string        `json:"fullName"`
	Email        string        `json:"email"`
	PhoneNumber  string        `json:"phoneNumber"`
	CreatedAt    time.Time     `json:"createdAt"`
	Reservations []Reservation `json:"reservations,omitempty"`
}

// ClientUpdate supports partial reconcile updates via nil-means-untouched.
type ClientUpdate struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
}

func (u ClientUpdate) Empty() bool {
	return u.FullName == nil && u.Email == nil && u.PhoneNumber == nil
}
