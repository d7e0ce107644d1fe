package models

// User is a dashboard account. Accounts are created out-of-band (or seeded
// at startup); this API only reads them for login.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

const RoleAdmin = "admin"
