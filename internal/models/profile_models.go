package models

import "time"

// Profile is a user of the system. The id doubles as the authentication
// identity.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileFilters defines the available filters for listing profiles.
type ProfileFilters struct {
	Role     *string `form:"role"`
	IsActive *bool   `form:"is_active"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
