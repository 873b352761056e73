package models

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions,omitempty"` // derived from Role, never stored
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"` // don’t expose hash
}
