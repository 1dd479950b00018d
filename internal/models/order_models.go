package models

import "time"

// Order is one laundry job for one customer with one service line.
type Order struct {
	ID                  string         `json:"id"`
	OrderNumber         string         `json:"order_number" db:"order_number"`
	CustomerID          string         `json:"customer_id" db:"customer_id"`
	ServiceID           string         `json:"service_id" db:"service_id"`
	CourierID           *string        `json:"courier_id,omitempty" db:"courier_id"`
	WorkshopStaffID     *string        `json:"workshop_staff_id,omitempty" db:"workshop_staff_id"`
	Status              OrderStatus    `json:"status" db:"status"`
	PaymentStatus       PaymentStatus  `json:"payment_status" db:"payment_status"`
	PaymentMethod       *PaymentMethod `json:"payment_method,omitempty" db:"payment_method"`
	Quantity            int            `json:"quantity" db:"quantity"`
	TotalAmount         float64        `json:"total_amount" db:"total_amount"`
	ShoeType            *string        `json:"shoe_type,omitempty" db:"shoe_type"`
	ShoeCondition       *string        `json:"shoe_condition,omitempty" db:"shoe_condition"`
	PickupAddress       string         `json:"pickup_address" db:"pickup_address"`
	DeliveryAddress     *string        `json:"delivery_address,omitempty" db:"delivery_address"`
	PickupDate          *time.Time     `json:"pickup_date,omitempty" db:"pickup_date"`
	DeliveryDate        *time.Time     `json:"delivery_date,omitempty" db:"delivery_date"`
	EstimatedCompletion *time.Time     `json:"estimated_completion,omitempty" db:"estimated_completion"`
	SpecialNotes        *string        `json:"special_notes,omitempty" db:"special_notes"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`

	// Joined display fields, populated by list/detail queries.
	CustomerName *string `json:"customer_name,omitempty"`
	ServiceName  *string `json:"service_name,omitempty"`
}

// TrackingEntry is one immutable log record of a status change.
type TrackingEntry struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"order_id" db:"order_id"`
	Status    OrderStatus `json:"status" db:"status"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
	UpdatedBy *string     `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`

	// Joined display field.
	UpdatedByName *string `json:"updated_by_name,omitempty"`
}

// OrderFilters defines the available filters for querying orders.
// Used by both the service and repository layers.
type OrderFilters struct {
	CustomerID    *string `form:"customer_id"`
	ServiceID     *string `form:"service_id"`
	Status        *string `form:"status"`
	PaymentStatus *string `form:"payment_status"`
	Date          *string `form:"date"` // Expected format YYYY-MM-DD
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}
