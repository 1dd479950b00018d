package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
	"cleanstride_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrOrderAlreadyPaid         = errors.New("order is already paid")
	ErrInvalidPaymentMethod     = errors.New("invalid payment method")
	ErrInvalidPaymentTransition = errors.New("payment status transition not allowed")
)

// --- DTOs ---

// RecordPaymentRequest is used when a customer chooses a payment method for
// an unpaid order.
type RecordPaymentRequest struct {
	OrderID       string  `json:"order_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Notes         *string `json:"notes"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	RecordPayment(req RecordPaymentRequest, callerID string, callerRole models.UserRole) (*models.Payment, error)
	GetPayments(filters models.PaymentFilters, callerID string, callerRole models.UserRole) ([]models.Payment, int, error)
	GetPaymentByID(paymentID string) (*models.Payment, error)
	SettlePayment(paymentID, actorID string) (*models.Payment, error)
	RefundPayment(paymentID, actorID string) (*models.Payment, error)
}

// --- paymentService Implementation ---
type paymentService struct {
	paymentRepo      repositories.PaymentRepository
	orderRepo        repositories.OrderRepository
	notificationRepo repositories.NotificationRepository
	db               *sql.DB
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	or repositories.OrderRepository,
	nr repositories.NotificationRepository,
	db *sql.DB,
) PaymentService {
	return &paymentService{
		paymentRepo:      pr,
		orderRepo:        or,
		notificationRepo: nr,
		db:               db,
	}
}

// RecordPayment attaches a payment method to an unpaid order. There is no
// gateway behind this: cash on delivery stays pending until an operator
// settles it, every other method is recorded as paid immediately with a
// generated transaction id. The payment insert and the order update commit
// together.
func (s *paymentService) RecordPayment(req RecordPaymentRequest, callerID string, callerRole models.UserRole) (*models.Payment, error) {
	method := models.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	order, err := s.orderRepo.GetOrderByID(req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for payment: %w", err)
	}
	if callerRole == models.RoleCustomer && order.CustomerID != callerID {
		return nil, ErrForbidden
	}
	if order.PaymentStatus == models.PaymentPaid || order.PaymentStatus == models.PaymentRefunded {
		return nil, fmt.Errorf("%w: order %s", ErrOrderAlreadyPaid, order.OrderNumber)
	}

	// Payment amount always matches the order total at recording time.
	payment := models.Payment{
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		PaymentMethod: method,
		Notes:         req.Notes,
	}
	if method == models.MethodCashOnDelivery {
		payment.PaymentStatus = models.PaymentPending
	} else {
		now := time.Now()
		txnID := uuid.NewString()
		payment.PaymentStatus = models.PaymentPaid
		payment.PaymentDate = &now
		payment.TransactionID = &txnID
	}

	paymentID, err := s.paymentRepo.RecordPayment(&payment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.notifyCustomer(order.CustomerID, order.ID,
		"Payment recorded",
		fmt.Sprintf("Payment for order %s recorded via %s (%s).", order.OrderNumber, method, payment.PaymentStatus))

	return s.paymentRepo.GetPaymentByID(paymentID)
}

func (s *paymentService) GetPayments(filters models.PaymentFilters, callerID string, callerRole models.UserRole) ([]models.Payment, int, error) {
	if callerRole == models.RoleCustomer {
		// Customers only see payments on their own orders. Scoping must
		// happen inside the query, before LIMIT/OFFSET, so pages and the
		// windowed total count stay correct.
		filters.CustomerID = &callerID
	}
	payments, totalCount, err := s.paymentRepo.GetPayments(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, totalCount, nil
}

func (s *paymentService) GetPaymentByID(paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ID: %w", err)
	}
	return payment, nil
}

// SettlePayment marks a pending cash-on-delivery payment as paid.
func (s *paymentService) SettlePayment(paymentID, actorID string) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionPayment(payment.PaymentStatus, models.PaymentPaid) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, payment.PaymentStatus, models.PaymentPaid)
	}

	now := time.Now()
	if err := s.paymentRepo.UpdatePaymentStatus(paymentID, models.PaymentPaid, &now); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	if order, err := s.orderRepo.GetOrderByID(payment.OrderID); err == nil {
		s.notifyCustomer(order.CustomerID, order.ID,
			"Payment settled",
			fmt.Sprintf("Payment for order %s has been settled.", order.OrderNumber))
	}

	return s.GetPaymentByID(paymentID)
}

// RefundPayment moves a paid payment to refunded.
func (s *paymentService) RefundPayment(paymentID, actorID string) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionPayment(payment.PaymentStatus, models.PaymentRefunded) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPaymentTransition, payment.PaymentStatus, models.PaymentRefunded)
	}

	if err := s.paymentRepo.UpdatePaymentStatus(paymentID, models.PaymentRefunded, nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}

	if order, err := s.orderRepo.GetOrderByID(payment.OrderID); err == nil {
		s.notifyCustomer(order.CustomerID, order.ID,
			"Payment refunded",
			fmt.Sprintf("Payment for order %s has been refunded.", order.OrderNumber))
	}

	return s.GetPaymentByID(paymentID)
}

func (s *paymentService) notifyCustomer(customerID, orderID, title, message string) {
	notification := models.Notification{
		UserID:  customerID,
		OrderID: &orderID,
		Title:   title,
		Message: message,
	}
	if _, err := s.notificationRepo.CreateNotification(s.db, &notification); err != nil {
		utils.LogError(err, "failed to create payment notification for order "+orderID)
	}
}
