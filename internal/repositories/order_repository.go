package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanstride_backend/internal/models"

	"github.com/lib/pq"
)

// OrderRepository defines the interface for order-related database
// operations. Multi-row writes (order + tracking entry) run inside a single
// transaction owned by the repository, so a failure never leaves the order
// and its history disagreeing.
type OrderRepository interface {
	CreateOrderWithTracking(order *models.Order, entry *models.TrackingEntry) (string, error)
	GetOrderByID(orderID string) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error) // orders, total count, error
	UpdateOrderStatusWithTracking(orderID string, newStatus models.OrderStatus, entry *models.TrackingEntry) error
	GetTrackingByOrderID(orderID string) ([]models.TrackingEntry, error) // newest first
	GetOrdersInWindow(start, end time.Time, customerID *string) ([]models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `o.id, o.order_number, o.customer_id, o.service_id, o.courier_id, o.workshop_staff_id,
	       o.status, o.payment_status, o.payment_method, o.quantity, o.total_amount,
	       o.shoe_type, o.shoe_condition, o.pickup_address, o.delivery_address,
	       o.pickup_date, o.delivery_date, o.estimated_completion, o.special_notes,
	       o.created_at, o.updated_at`

func scanOrder(s interface{ Scan(...interface{}) error }, o *models.Order, extra ...interface{}) error {
	dest := []interface{}{
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.ServiceID, &o.CourierID, &o.WorkshopStaffID,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.Quantity, &o.TotalAmount,
		&o.ShoeType, &o.ShoeCondition, &o.PickupAddress, &o.DeliveryAddress,
		&o.PickupDate, &o.DeliveryDate, &o.EstimatedCompletion, &o.SpecialNotes,
		&o.CreatedAt, &o.UpdatedAt,
	}
	dest = append(dest, extra...)
	return s.Scan(dest...)
}

// CreateOrderWithTracking inserts the order and its initial tracking entry
// in one transaction. The display code comes from the generate_order_number
// database function.
func (r *orderRepository) CreateOrderWithTracking(order *models.Order, entry *models.TrackingEntry) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("%w: starting order transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`SELECT generate_order_number()`).Scan(&order.OrderNumber); err != nil {
		return "", fmt.Errorf("%w: generating order number: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO orders
	            (order_number, customer_id, service_id, status, payment_status, quantity, total_amount,
	             shoe_type, shoe_condition, pickup_address, delivery_address, pickup_date,
	             estimated_completion, special_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`

	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt

	err = tx.QueryRow(query,
		order.OrderNumber, order.CustomerID, order.ServiceID, order.Status, order.PaymentStatus,
		order.Quantity, order.TotalAmount, order.ShoeType, order.ShoeCondition,
		order.PickupAddress, order.DeliveryAddress, order.PickupDate,
		order.EstimatedCompletion, order.SpecialNotes, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return "", fmt.Errorf("%w: creating order (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return "", fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}

	entry.OrderID = order.ID
	if _, err := r.createTrackingEntry(tx, entry); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: committing order transaction: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) createTrackingEntry(executor SQLExecutor, entry *models.TrackingEntry) (string, error) {
	query := `INSERT INTO order_tracking (order_id, status, notes, updated_by, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		entry.OrderID, entry.Status, entry.Notes, entry.UpdatedBy, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return "", fmt.Errorf("%w: creating tracking entry for order %s: %v", ErrDatabaseError, entry.OrderID, err)
	}
	return entry.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID string) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + `,
	                 c.full_name AS customer_name, s.name AS service_name
	          FROM orders o
	          JOIN profiles c ON o.customer_id = c.id
	          JOIN services s ON o.service_id = s.id
	          WHERE o.id = $1`

	var customerName, serviceName sql.NullString
	err := scanOrder(r.db.QueryRow(query, orderID), order, &customerName, &serviceName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %s: %v", ErrDatabaseError, orderID, err)
	}
	if customerName.Valid {
		name := customerName.String
		order.CustomerName = &name
	}
	if serviceName.Valid {
		name := serviceName.String
		order.ServiceName = &name
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `,
	       c.full_name AS customer_name, s.name AS service_name,
	       COUNT(*) OVER() AS total_count
	FROM orders o
	JOIN profiles c ON o.customer_id = c.id
	JOIN services s ON o.service_id = s.id`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.CustomerID != nil && *filters.CustomerID != "" {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argCounter))
		args = append(args, *filters.CustomerID)
		argCounter++
	}
	if filters.ServiceID != nil && *filters.ServiceID != "" {
		conditions = append(conditions, fmt.Sprintf("o.service_id = $%d", argCounter))
		args = append(args, *filters.ServiceID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.PaymentStatus != nil && *filters.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("o.payment_status = $%d", argCounter))
		args = append(args, *filters.PaymentStatus)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1)
			conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d AND o.created_at < $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var customerName, serviceName sql.NullString
		if err := scanOrder(rows, &o, &customerName, &serviceName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		if customerName.Valid {
			name := customerName.String
			o.CustomerName = &name
		}
		if serviceName.Valid {
			name := serviceName.String
			o.ServiceName = &name
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

// UpdateOrderStatusWithTracking updates the order status and appends the
// matching tracking entry in one transaction, keeping the order row and its
// history in agreement.
func (r *orderRepository) UpdateOrderStatusWithTracking(orderID string, newStatus models.OrderStatus, entry *models.TrackingEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting status transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for %s: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for status update %s: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	entry.OrderID = orderID
	entry.Status = newStatus
	if _, err := r.createTrackingEntry(tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing status transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetTrackingByOrderID(orderID string) ([]models.TrackingEntry, error) {
	entries := []models.TrackingEntry{}
	query := `SELECT t.id, t.order_id, t.status, t.notes, t.updated_by, t.created_at,
	                 p.full_name AS updated_by_name
	          FROM order_tracking t
	          LEFT JOIN profiles p ON t.updated_by = p.id
	          WHERE t.order_id = $1
	          ORDER BY t.created_at DESC`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tracking for order %s: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.TrackingEntry
		var updatedByName sql.NullString
		err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Notes, &e.UpdatedBy, &e.CreatedAt, &updatedByName)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning tracking entry for order %s: %v", ErrDatabaseError, orderID, err)
		}
		if updatedByName.Valid {
			name := updatedByName.String
			e.UpdatedByName = &name
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tracking rows for order %s: %v", ErrDatabaseError, orderID, err)
	}
	return entries, nil
}

// GetOrdersInWindow fetches the orders created inside [start, end) for
// report aggregation. A non-nil customerID restricts the set to that
// customer's orders.
func (r *orderRepository) GetOrdersInWindow(start, end time.Time, customerID *string) ([]models.Order, error) {
	orders := []models.Order{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + `,
	       c.full_name AS customer_name, s.name AS service_name
	FROM orders o
	JOIN profiles c ON o.customer_id = c.id
	JOIN services s ON o.service_id = s.id
	WHERE o.created_at >= $1 AND o.created_at < $2`)

	args := []interface{}{start, end}
	if customerID != nil {
		queryBuilder.WriteString(" AND o.customer_id = $3")
		args = append(args, *customerID)
	}
	queryBuilder.WriteString(" ORDER BY o.created_at ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders in window: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var customerName, serviceName sql.NullString
		if err := scanOrder(rows, &o, &customerName, &serviceName); err != nil {
			return nil, fmt.Errorf("%w: scanning windowed order: %v", ErrDatabaseError, err)
		}
		if customerName.Valid {
			name := customerName.String
			o.CustomerName = &name
		}
		if serviceName.Valid {
			name := serviceName.String
			o.ServiceName = &name
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating windowed order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}
