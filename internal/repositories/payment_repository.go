package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanstride_backend/internal/models"
)

// PaymentRepository defines the interface for payment-related database
// operations. Recording a payment and mirroring the method/status onto the
// order happen in one transaction, never as two independent writes.
type PaymentRepository interface {
	RecordPayment(payment *models.Payment) (string, error)
	GetPaymentByID(paymentID string) (*models.Payment, error)
	GetPayments(filters models.PaymentFilters) ([]models.Payment, int, error)
	UpdatePaymentStatus(paymentID string, newStatus models.PaymentStatus, paymentDate *time.Time) error
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// RecordPayment inserts the payment row and updates the order's
// payment_method and payment_status in a single transaction.
func (r *paymentRepository) RecordPayment(payment *models.Payment) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("%w: starting payment transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO payments (order_id, amount, payment_method, payment_status, transaction_id, payment_date, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	err = tx.QueryRow(query,
		payment.OrderID, payment.Amount, payment.PaymentMethod, payment.PaymentStatus,
		payment.TransactionID, payment.PaymentDate, payment.Notes, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return "", fmt.Errorf("%w: creating payment for order %s: %v", ErrDatabaseError, payment.OrderID, err)
	}

	result, err := tx.Exec(`UPDATE orders SET payment_method = $1, payment_status = $2, updated_at = $3 WHERE id = $4`,
		payment.PaymentMethod, payment.PaymentStatus, time.Now(), payment.OrderID)
	if err != nil {
		return "", fmt.Errorf("%w: updating order payment fields for %s: %v", ErrDatabaseError, payment.OrderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("%w: getting rows affected for order payment update %s: %v", ErrDatabaseError, payment.OrderID, err)
	}
	if rowsAffected == 0 {
		return "", ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: committing payment transaction: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPaymentByID(paymentID string) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT p.id, p.order_id, p.amount, p.payment_method, p.payment_status,
	                 p.transaction_id, p.payment_date, p.notes, p.created_at,
	                 o.order_number, c.full_name AS customer_name
	          FROM payments p
	          JOIN orders o ON p.order_id = o.id
	          JOIN profiles c ON o.customer_id = c.id
	          WHERE p.id = $1`

	var orderNumber, customerName sql.NullString
	err := r.db.QueryRow(query, paymentID).Scan(
		&payment.ID, &payment.OrderID, &payment.Amount, &payment.PaymentMethod, &payment.PaymentStatus,
		&payment.TransactionID, &payment.PaymentDate, &payment.Notes, &payment.CreatedAt,
		&orderNumber, &customerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment by ID %s: %v", ErrDatabaseError, paymentID, err)
	}
	if orderNumber.Valid {
		n := orderNumber.String
		payment.OrderNumber = &n
	}
	if customerName.Valid {
		n := customerName.String
		payment.CustomerName = &n
	}
	return payment, nil
}

func (r *paymentRepository) GetPayments(filters models.PaymentFilters) ([]models.Payment, int, error) {
	payments := []models.Payment{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT p.id, p.order_id, p.amount, p.payment_method, p.payment_status,
	       p.transaction_id, p.payment_date, p.notes, p.created_at,
	       o.order_number, c.full_name AS customer_name,
	       COUNT(*) OVER() AS total_count
	FROM payments p
	JOIN orders o ON p.order_id = o.id
	JOIN profiles c ON o.customer_id = c.id`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.OrderID != nil && *filters.OrderID != "" {
		conditions = append(conditions, fmt.Sprintf("p.order_id = $%d", argCounter))
		args = append(args, *filters.OrderID)
		argCounter++
	}
	if filters.CustomerID != nil && *filters.CustomerID != "" {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argCounter))
		args = append(args, *filters.CustomerID)
		argCounter++
	}
	if filters.PaymentStatus != nil && *filters.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("p.payment_status = $%d", argCounter))
		args = append(args, *filters.PaymentStatus)
		argCounter++
	}
	if filters.PaymentMethod != nil && *filters.PaymentMethod != "" {
		conditions = append(conditions, fmt.Sprintf("p.payment_method = $%d", argCounter))
		args = append(args, *filters.PaymentMethod)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.created_at DESC")

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
		return nil, 0, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		var orderNumber, customerName sql.NullString
		err := rows.Scan(
			&p.ID, &p.OrderID, &p.Amount, &p.PaymentMethod, &p.PaymentStatus,
			&p.TransactionID, &p.PaymentDate, &p.Notes, &p.CreatedAt,
			&orderNumber, &customerName, &totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		if orderNumber.Valid {
			n := orderNumber.String
			p.OrderNumber = &n
		}
		if customerName.Valid {
			n := customerName.String
			p.CustomerName = &n
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, totalCount, nil
}

// UpdatePaymentStatus moves a payment to a new settlement status and mirrors
// it onto the owning order, in one transaction. Used for cash-on-delivery
// settlement and refunds.
func (r *paymentRepository) UpdatePaymentStatus(paymentID string, newStatus models.PaymentStatus, paymentDate *time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting payment status transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	var orderID string
	err = tx.QueryRow(`UPDATE payments SET payment_status = $1, payment_date = COALESCE($2, payment_date) WHERE id = $3 RETURNING order_id`,
		newStatus, paymentDate, paymentID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating payment status for %s: %v", ErrDatabaseError, paymentID, err)
	}

	if _, err := tx.Exec(`UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, time.Now(), orderID); err != nil {
		return fmt.Errorf("%w: mirroring payment status onto order %s: %v", ErrDatabaseError, orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing payment status transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
