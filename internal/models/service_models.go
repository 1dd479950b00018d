package models

import "time"

// Service is one entry in the laundry service catalog.
// Price and duration apply only while the service is active; inactive
// services stay visible in order history but are not selectable for new
// orders.
type Service struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Price        float64   `json:"price" db:"price"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
