package models

import "time"

// Notification is an in-app message for a user, usually tied to an order
// status change or a payment event.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	OrderID   *string   `json:"order_id,omitempty" db:"order_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
