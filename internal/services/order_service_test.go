package services

import (
	"testing"
	"time"

	"cleanstride_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderServiceForTest() (OrderService, *fakeOrderRepo, *fakeServiceRepo, *fakeNotificationRepo) {
	orderRepo := newFakeOrderRepo()
	serviceRepo := newFakeServiceRepo()
	notificationRepo := newFakeNotificationRepo()
	svc := NewOrderService(orderRepo, serviceRepo, notificationRepo, nil)
	return svc, orderRepo, serviceRepo, notificationRepo
}

func addCatalogService(serviceRepo *fakeServiceRepo, id string, price float64, durationDays int, active bool) {
	serviceRepo.add(models.Service{
		ID:           id,
		Name:         "Deep Clean",
		Price:        price,
		DurationDays: durationDays,
		IsActive:     active,
	})
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 50000.0, ComputeTotal(25000, 2, false))
	assert.Equal(t, 67500.0, ComputeTotal(45000, 1, true))
	assert.Equal(t, 150000.0, ComputeTotal(50000, 2, true))
	assert.Equal(t, 0.0, ComputeTotal(25000, 0, true))
}

func TestCreateOrder(t *testing.T) {
	svc, orderRepo, serviceRepo, notificationRepo := newOrderServiceForTest()
	addCatalogService(serviceRepo, "service-1", 25000, 3, true)

	pickup := time.Now().AddDate(0, 0, 2)
	order, err := svc.CreateOrder(CreateOrderRequest{
		ServiceID:     "service-1",
		Quantity:      2,
		PickupAddress: "Jl. Merdeka 1",
		PickupDate:    &pickup,
		Urgent:        false,
	}, "customer-1", models.RoleCustomer)

	require.NoError(t, err)
	assert.Equal(t, "customer-1", order.CustomerID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 50000.0, order.TotalAmount)
	assert.NotEmpty(t, order.OrderNumber)

	require.NotNil(t, order.EstimatedCompletion)
	assert.Equal(t, pickup.AddDate(0, 0, 3).Day(), order.EstimatedCompletion.Day())

	entries, err := orderRepo.GetTrackingByOrderID(order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusPending, entries[0].Status)

	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "customer-1", notificationRepo.created[0].UserID)
}

func TestCreateOrderUrgentSurcharge(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	addCatalogService(serviceRepo, "service-1", 45000, 1, true)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ServiceID:     "service-1",
		Quantity:      1,
		PickupAddress: "Jl. Merdeka 1",
		Urgent:        true,
	}, "customer-1", models.RoleCustomer)

	require.NoError(t, err)
	assert.Equal(t, 67500.0, order.TotalAmount)
}

func TestCreateOrderCustomerCannotOrderForOthers(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	addCatalogService(serviceRepo, "service-1", 25000, 3, true)

	order, err := svc.CreateOrder(CreateOrderRequest{
		CustomerID:    "somebody-else",
		ServiceID:     "service-1",
		Quantity:      1,
		PickupAddress: "Jl. Merdeka 1",
	}, "customer-1", models.RoleCustomer)

	require.NoError(t, err)
	assert.Equal(t, "customer-1", order.CustomerID)
}

func TestCreateOrderStaffMustNameCustomer(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	addCatalogService(serviceRepo, "service-1", 25000, 3, true)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ServiceID:     "service-1",
		Quantity:      1,
		PickupAddress: "Jl. Merdeka 1",
	}, "admin-1", models.RoleAdmin)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	addCatalogService(serviceRepo, "service-1", 25000, 3, true)
	addCatalogService(serviceRepo, "service-2", 25000, 3, false)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ServiceID: "service-1", Quantity: 1, PickupAddress: "  ",
	}, "customer-1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(CreateOrderRequest{
		ServiceID: "service-1", Quantity: 0, PickupAddress: "Jl. Merdeka 1",
	}, "customer-1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrValidation)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err = svc.CreateOrder(CreateOrderRequest{
		ServiceID: "service-1", Quantity: 1, PickupAddress: "Jl. Merdeka 1", PickupDate: &yesterday,
	}, "customer-1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(CreateOrderRequest{
		ServiceID: "missing", Quantity: 1, PickupAddress: "Jl. Merdeka 1",
	}, "customer-1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.CreateOrder(CreateOrderRequest{
		ServiceID: "service-2", Quantity: 1, PickupAddress: "Jl. Merdeka 1",
	}, "customer-1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func createTestOrder(t *testing.T, svc OrderService, serviceRepo *fakeServiceRepo, customerID string) *models.Order {
	t.Helper()
	if _, err := serviceRepo.GetServiceByID("service-1"); err != nil {
		addCatalogService(serviceRepo, "service-1", 25000, 3, true)
	}
	order, err := svc.CreateOrder(CreateOrderRequest{
		ServiceID:     "service-1",
		Quantity:      1,
		PickupAddress: "Jl. Merdeka 1",
	}, customerID, models.RoleCustomer)
	require.NoError(t, err)
	return order
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, orderRepo, serviceRepo, notificationRepo := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")

	notes := "called the customer"
	updated, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{
		Status: "confirmed",
		Notes:  &notes,
	}, "admin-1")

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	entries, err := orderRepo.GetTrackingByOrderID(order.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.StatusConfirmed, entries[0].Status)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, notes, *entries[0].Notes)

	// creation + status change
	assert.Len(t, notificationRepo.created, 2)
}

func TestUpdateOrderStatusRejectsSkippingSteps(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")

	_, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "picked_up"}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")

	_, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "shipped"}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateOrderStatusTerminal(t *testing.T) {
	svc, orderRepo, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")
	orderRepo.orders[order.ID].Status = models.StatusDelivered

	_, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "cancelled"}, "admin-1")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateOrderStatusCancellation(t *testing.T) {
	svc, orderRepo, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")
	orderRepo.orders[order.ID].Status = models.StatusInProcess

	updated, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "cancelled"}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc, _, _, _ := newOrderServiceForTest()

	_, err := svc.UpdateOrderStatus("missing", UpdateOrderStatusRequest{Status: "confirmed"}, "admin-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderByIDOwnership(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")

	_, err := svc.GetOrderByID(order.ID, "customer-2", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.GetOrderByID(order.ID, "admin-1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestGetOrdersScopesCustomers(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	createTestOrder(t, svc, serviceRepo, "customer-1")
	createTestOrder(t, svc, serviceRepo, "customer-2")

	orders, total, err := svc.GetOrders(models.OrderFilters{}, "customer-1", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "customer-1", orders[0].CustomerID)

	_, total, err = svc.GetOrders(models.OrderFilters{}, "admin-1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestGetOrderTracking(t *testing.T) {
	svc, _, serviceRepo, _ := newOrderServiceForTest()
	order := createTestOrder(t, svc, serviceRepo, "customer-1")

	_, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "confirmed"}, "admin-1")
	require.NoError(t, err)

	view, err := svc.GetOrderTracking(order.ID, "customer-1", models.RoleCustomer)
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, models.StatusConfirmed, view.Entries[0].Status)
	assert.Equal(t, 1, view.ProgressIndex)
	assert.Equal(t, 9, view.StepCount)
	assert.Equal(t, "Confirmed", view.Display.Label)
}

func TestGetOrderTrackingEmptyHistory(t *testing.T) {
	svc, orderRepo, _, _ := newOrderServiceForTest()
	orderRepo.orders["order-x"] = &models.Order{
		ID:         "order-x",
		CustomerID: "customer-1",
		Status:     models.StatusPending,
	}

	view, err := svc.GetOrderTracking("order-x", "customer-1", models.RoleCustomer)
	require.NoError(t, err)
	assert.NotNil(t, view.Entries)
	assert.Empty(t, view.Entries)
	assert.Equal(t, -1, view.ProgressIndex)
}
