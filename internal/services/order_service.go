package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
	"cleanstride_backend/pkg/utils"
)

// Custom Errors shared across services.
var (
	ErrValidation              = errors.New("validation failed")
	ErrForbidden               = errors.New("operation not permitted for this user")
	ErrOrderNotFound           = errors.New("order not found")
	ErrServiceNotFound         = errors.New("service not found")
	ErrServiceInactive         = errors.New("service is not active")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
)

// UrgentSurchargeRate is the fraction added on top of the base price when the
// urgent/express flag is set. The canonical rate is 50%.
const UrgentSurchargeRate = 0.5

// ComputeTotal quotes an order: base price times quantity, plus the urgent
// surcharge when requested.
func ComputeTotal(price float64, quantity int, urgent bool) float64 {
	base := price * float64(quantity)
	if urgent {
		return base + base*UrgentSurchargeRate
	}
	return base
}

// --- Data Transfer Objects (DTOs) ---

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerID      string     `json:"customer_id"` // ignored for customer callers, required for staff
	ServiceID       string     `json:"service_id" binding:"required"`
	Quantity        int        `json:"quantity" binding:"required,gt=0"`
	ShoeType        *string    `json:"shoe_type"`
	ShoeCondition   *string    `json:"shoe_condition"`
	PickupAddress   string     `json:"pickup_address" binding:"required"`
	DeliveryAddress *string    `json:"delivery_address"`
	PickupDate      *time.Time `json:"pickup_date"`
	Urgent          bool       `json:"urgent"`
	SpecialNotes    *string    `json:"special_notes"`
}

// UpdateOrderStatusRequest is used for moving an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// TrackingView is the tracking projection for one order: the order summary,
// its history newest first, and the furthest completed step for progress
// rendering.
type TrackingView struct {
	Order         *models.Order          `json:"order"`
	Entries       []models.TrackingEntry `json:"entries"`
	ProgressIndex int                    `json:"progress_index"`
	StepCount     int                    `json:"step_count"`
	Display       models.StatusDisplay   `json:"display"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(req CreateOrderRequest, callerID string, callerRole models.UserRole) (*models.Order, error)
	GetOrders(filters models.OrderFilters, callerID string, callerRole models.UserRole) ([]models.Order, int, error)
	GetOrderByID(orderID, callerID string, callerRole models.UserRole) (*models.Order, error)
	UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest, actorID string) (*models.Order, error)
	GetOrderTracking(orderID, callerID string, callerRole models.UserRole) (*TrackingView, error)
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo        repositories.OrderRepository
	serviceRepo      repositories.ServiceRepository
	notificationRepo repositories.NotificationRepository
	db               *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	sr repositories.ServiceRepository,
	nr repositories.NotificationRepository,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:        or,
		serviceRepo:      sr,
		notificationRepo: nr,
		db:               db,
	}
}

// --- Method Implementations ---

func (s *orderService) CreateOrder(req CreateOrderRequest, callerID string, callerRole models.UserRole) (*models.Order, error) {
	customerID := req.CustomerID
	if callerRole == models.RoleCustomer {
		customerID = callerID
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if strings.TrimSpace(req.PickupAddress) == "" {
		return nil, fmt.Errorf("%w: pickup_address is required", ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if req.PickupDate != nil {
		now := time.Now()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if req.PickupDate.Before(startOfToday) {
			return nil, fmt.Errorf("%w: pickup date must not be in the past", ErrValidation)
		}
	}

	service, err := s.serviceRepo.GetServiceByID(req.ServiceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceID)
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", req.ServiceID, err)
	}
	if !service.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrServiceInactive, service.Name)
	}

	total := ComputeTotal(service.Price, req.Quantity, req.Urgent)

	baseDate := time.Now()
	if req.PickupDate != nil {
		baseDate = *req.PickupDate
	}
	eta := baseDate.AddDate(0, 0, service.DurationDays)

	order := models.Order{
		CustomerID:          customerID,
		ServiceID:           service.ID,
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentPending,
		Quantity:            req.Quantity,
		TotalAmount:         total,
		ShoeType:            req.ShoeType,
		ShoeCondition:       req.ShoeCondition,
		PickupAddress:       req.PickupAddress,
		DeliveryAddress:     req.DeliveryAddress,
		PickupDate:          req.PickupDate,
		EstimatedCompletion: &eta,
		SpecialNotes:        req.SpecialNotes,
	}
	initialNote := "Order received"
	entry := models.TrackingEntry{
		Status:    models.StatusPending,
		Notes:     &initialNote,
		UpdatedBy: &callerID,
	}

	orderID, err := s.orderRepo.CreateOrderWithTracking(&order, &entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifyCustomer(customerID, orderID,
		"Order created",
		fmt.Sprintf("Order %s has been received and is awaiting confirmation.", order.OrderNumber))

	return s.orderRepo.GetOrderByID(orderID)
}

func (s *orderService) GetOrders(filters models.OrderFilters, callerID string, callerRole models.UserRole) ([]models.Order, int, error) {
	if callerRole == models.RoleCustomer {
		filters.CustomerID = &callerID
	}
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID, callerID string, callerRole models.UserRole) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}
	if callerRole == models.RoleCustomer && order.CustomerID != callerID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest, actorID string) (*models.Order, error) {
	newStatus := models.OrderStatus(req.Status)
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	currentOrder, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	if !models.CanTransition(currentOrder.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, currentOrder.Status, newStatus)
	}

	entry := models.TrackingEntry{
		Notes:     req.Notes,
		UpdatedBy: &actorID,
	}
	if err := s.orderRepo.UpdateOrderStatusWithTracking(orderID, newStatus, &entry); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.notifyCustomer(currentOrder.CustomerID, orderID,
		"Order update",
		fmt.Sprintf("Order %s is now: %s.", currentOrder.OrderNumber, newStatus.Display().Label))

	return s.orderRepo.GetOrderByID(orderID)
}

func (s *orderService) GetOrderTracking(orderID, callerID string, callerRole models.UserRole) (*TrackingView, error) {
	order, err := s.GetOrderByID(orderID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	entries, err := s.orderRepo.GetTrackingByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking for order %s: %w", orderID, err)
	}
	if entries == nil {
		entries = []models.TrackingEntry{}
	}

	return &TrackingView{
		Order:         order,
		Entries:       entries,
		ProgressIndex: models.ProgressIndex(entries),
		StepCount:     models.StatusDelivered.StepIndex() + 1,
		Display:       order.Status.Display(),
	}, nil
}

// notifyCustomer writes an in-app notification. Failures are logged, not
// returned: the triggering operation has already committed.
func (s *orderService) notifyCustomer(customerID, orderID, title, message string) {
	notification := models.Notification{
		UserID:  customerID,
		OrderID: &orderID,
		Title:   title,
		Message: message,
	}
	if _, err := s.notificationRepo.CreateNotification(s.db, &notification); err != nil {
		utils.LogError(err, "failed to create notification for order "+orderID)
	}
}
