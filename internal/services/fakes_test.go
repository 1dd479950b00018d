package services

import (
	"fmt"
	"sort"
	"time"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
)

// In-memory repository fakes backing the service tests.

type fakeOrderRepo struct {
	orders   map[string]*models.Order
	tracking map[string][]models.TrackingEntry
	seq      int

	lastWindowStart      time.Time
	lastWindowEnd        time.Time
	lastWindowCustomerID *string
	windowOrders         []models.Order
	windowErr            error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[string]*models.Order{},
		tracking: map[string][]models.TrackingEntry{},
	}
}

func (r *fakeOrderRepo) CreateOrderWithTracking(order *models.Order, entry *models.TrackingEntry) (string, error) {
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	order.OrderNumber = fmt.Sprintf("CLS-%06d", r.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	stored := *order
	r.orders[order.ID] = &stored

	entry.OrderID = order.ID
	entry.CreatedAt = time.Now()
	r.tracking[order.ID] = append([]models.TrackingEntry{*entry}, r.tracking[order.ID]...)
	return order.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID string) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if filters.CustomerID != nil && o.CustomerID != *filters.CustomerID {
			continue
		}
		if filters.Status != nil && string(o.Status) != *filters.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) UpdateOrderStatusWithTracking(orderID string, newStatus models.OrderStatus, entry *models.TrackingEntry) error {
	order, ok := r.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()

	entry.OrderID = orderID
	entry.Status = newStatus
	entry.CreatedAt = time.Now()
	r.tracking[orderID] = append([]models.TrackingEntry{*entry}, r.tracking[orderID]...)
	return nil
}

func (r *fakeOrderRepo) GetTrackingByOrderID(orderID string) ([]models.TrackingEntry, error) {
	return r.tracking[orderID], nil
}

func (r *fakeOrderRepo) GetOrdersInWindow(start, end time.Time, customerID *string) ([]models.Order, error) {
	r.lastWindowStart = start
	r.lastWindowEnd = end
	r.lastWindowCustomerID = customerID
	return r.windowOrders, r.windowErr
}

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*models.Service{}}
}

func (r *fakeServiceRepo) add(s models.Service) {
	stored := s
	r.services[s.ID] = &stored
}

func (r *fakeServiceRepo) CreateService(_ repositories.SQLExecutor, service *models.Service) (string, error) {
	if service.ID == "" {
		service.ID = fmt.Sprintf("service-%d", len(r.services)+1)
	}
	r.add(*service)
	return service.ID, nil
}

func (r *fakeServiceRepo) GetServiceByID(serviceID string) (*models.Service, error) {
	service, ok := r.services[serviceID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *service
	return &copied, nil
}

func (r *fakeServiceRepo) GetServices(activeOnly bool) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range r.services {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateService(_ repositories.SQLExecutor, service *models.Service) error {
	if _, ok := r.services[service.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.add(*service)
	return nil
}

func (r *fakeServiceRepo) DeleteService(_ repositories.SQLExecutor, serviceID string) error {
	if _, ok := r.services[serviceID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.services, serviceID)
	return nil
}

type fakeNotificationRepo struct {
	created []models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateNotification(_ repositories.SQLExecutor, notification *models.Notification) (string, error) {
	notification.ID = fmt.Sprintf("notification-%d", len(r.created)+1)
	notification.CreatedAt = time.Now()
	r.created = append(r.created, *notification)
	return notification.ID, nil
}

func (r *fakeNotificationRepo) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ repositories.SQLExecutor, notificationID, userID string) error {
	for i, n := range r.created {
		if n.ID == notificationID && n.UserID == userID {
			r.created[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ repositories.SQLExecutor, userID string) error {
	for i, n := range r.created {
		if n.UserID == userID {
			r.created[i].IsRead = true
		}
	}
	return nil
}

// fakePaymentRepo mirrors payment writes onto the order the way the real
// repository's transactions do.
type fakePaymentRepo struct {
	payments map[string]*models.Payment
	orders   *fakeOrderRepo
	seq      int
}

func newFakePaymentRepo(orders *fakeOrderRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}, orders: orders}
}

func (r *fakePaymentRepo) RecordPayment(payment *models.Payment) (string, error) {
	order, ok := r.orders.orders[payment.OrderID]
	if !ok {
		return "", repositories.ErrNotFound
	}

	r.seq++
	payment.ID = fmt.Sprintf("payment-%d", r.seq)
	payment.CreatedAt = time.Now()
	stored := *payment
	r.payments[payment.ID] = &stored

	method := payment.PaymentMethod
	order.PaymentMethod = &method
	order.PaymentStatus = payment.PaymentStatus
	return payment.ID, nil
}

func (r *fakePaymentRepo) GetPaymentByID(paymentID string) (*models.Payment, error) {
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *payment
	return &copied, nil
}

// GetPayments filters before pagination and reports the filtered total,
// matching the real query's windowed count.
func (r *fakePaymentRepo) GetPayments(filters models.PaymentFilters) ([]models.Payment, int, error) {
	matched := []models.Payment{}
	for _, p := range r.payments {
		if filters.OrderID != nil && p.OrderID != *filters.OrderID {
			continue
		}
		if filters.CustomerID != nil {
			order, ok := r.orders.orders[p.OrderID]
			if !ok || order.CustomerID != *filters.CustomerID {
				continue
			}
		}
		if filters.PaymentStatus != nil && string(p.PaymentStatus) != *filters.PaymentStatus {
			continue
		}
		if filters.PaymentMethod != nil && string(p.PaymentMethod) != *filters.PaymentMethod {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if filters.PageSize > 0 {
		offset := 0
		if filters.Page > 0 {
			offset = (filters.Page - 1) * filters.PageSize
		}
		if offset >= total {
			return []models.Payment{}, total, nil
		}
		end := offset + filters.PageSize
		if end > total {
			end = total
		}
		matched = matched[offset:end]
	}
	return matched, total, nil
}

func (r *fakePaymentRepo) UpdatePaymentStatus(paymentID string, newStatus models.PaymentStatus, paymentDate *time.Time) error {
	payment, ok := r.payments[paymentID]
	if !ok {
		return repositories.ErrNotFound
	}
	payment.PaymentStatus = newStatus
	if paymentDate != nil {
		payment.PaymentDate = paymentDate
	}
	if order, ok := r.orders.orders[payment.OrderID]; ok {
		order.PaymentStatus = newStatus
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	hashes   map[string]string
	seq      int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}, hashes: map[string]string{}}
}

func (r *fakeProfileRepo) CreateProfile(_ repositories.SQLExecutor, profile *models.Profile, passwordHash string) (string, error) {
	for _, p := range r.profiles {
		if p.Email == profile.Email {
			return "", repositories.ErrDuplicateKey
		}
	}
	r.seq++
	profile.ID = fmt.Sprintf("profile-%d", r.seq)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	stored := *profile
	r.profiles[profile.ID] = &stored
	r.hashes[profile.ID] = passwordHash
	return profile.ID, nil
}

func (r *fakeProfileRepo) FindProfileByEmail(email string) (*models.Profile, string, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			copied := *p
			return &copied, r.hashes[p.ID], nil
		}
	}
	return nil, "", repositories.ErrNotFound
}

func (r *fakeProfileRepo) FindProfileByID(profileID string) (*models.Profile, error) {
	profile, ok := r.profiles[profileID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) UpdateProfile(_ repositories.SQLExecutor, profile *models.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakeProfileRepo) GetProfiles(filters models.ProfileFilters) ([]models.Profile, int, error) {
	out := []models.Profile{}
	for _, p := range r.profiles {
		if filters.Role != nil && string(p.Role) != *filters.Role {
			continue
		}
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}
