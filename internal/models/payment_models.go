package models

import "time"

// Payment is one settlement record for an order. Created when a payment
// method is chosen; cash-on-delivery payments stay pending until settled by
// an operator.
type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id" db:"order_id"`
	Amount        float64       `json:"amount" db:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	TransactionID *string       `json:"transaction_id,omitempty" db:"transaction_id"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty" db:"payment_date"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`

	// Joined display fields.
	OrderNumber  *string `json:"order_number,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
}

// PaymentFilters defines the available filters for querying payments.
// CustomerID scopes the list to payments on one customer's orders; the
// service layer forces it for customer callers so pagination and totals
// stay correct.
type PaymentFilters struct {
	OrderID       *string `form:"order_id"`
	CustomerID    *string `form:"customer_id"`
	PaymentStatus *string `form:"payment_status"`
	PaymentMethod *string `form:"payment_method"`
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}
