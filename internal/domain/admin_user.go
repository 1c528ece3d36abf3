package domain

import "time"

// AdminUser is a back-office account. Visitors submitting enquiries are
// anonymous; only staff authenticate.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const RoleAdmin = "admin"
