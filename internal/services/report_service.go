package services

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/repositories"
)

const reportDateLayout = "2006-01-02"

// --- ReportService Interface ---
type ReportService interface {
	OrderReport(params models.ReportRequestParams, callerID string, callerRole models.UserRole) (*models.OrderReport, error)
	DashboardSummary() (*models.DashboardSummary, error)
}

// --- reportService Implementation ---
type reportService struct {
	orderRepo repositories.OrderRepository
	db        *sql.DB
}

// NewReportService creates a new instance of ReportService.
func NewReportService(or repositories.OrderRepository, db *sql.DB) ReportService {
	return &reportService{orderRepo: or, db: db}
}

// OrderReport fetches the orders inside the requested window and aggregates
// them in memory. Non-administrators only see their own orders. The window
// defaults to the last 30 days; the end date is inclusive.
func (s *reportService) OrderReport(params models.ReportRequestParams, callerID string, callerRole models.UserRole) (*models.OrderReport, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if params.StartDate != "" {
		parsed, err := time.Parse(reportDateLayout, params.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start_date %q, expected YYYY-MM-DD", ErrValidation, params.StartDate)
		}
		start = parsed
	}
	if params.EndDate != "" {
		parsed, err := time.Parse(reportDateLayout, params.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_date %q, expected YYYY-MM-DD", ErrValidation, params.EndDate)
		}
		end = parsed.AddDate(0, 0, 1) // include the whole end day
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start_date must be before end_date", ErrValidation)
	}

	var customerID *string
	if callerRole != models.RoleAdmin {
		customerID = &callerID
	}

	orders, err := s.orderRepo.GetOrdersInWindow(start, end, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for report: %w", err)
	}
	return BuildOrderReport(orders), nil
}

// BuildOrderReport is the pure aggregation over an already-fetched order
// set: total count and revenue, plus count/revenue/percentage partitions by
// status, service and month. Every partition's counts sum to the total.
func BuildOrderReport(orders []models.Order) *models.OrderReport {
	report := &models.OrderReport{
		TotalCount: len(orders),
	}

	byStatus := map[string]*models.CategorySummary{}
	byService := map[string]*models.CategorySummary{}
	byMonth := map[string]*models.CategorySummary{}

	bump := func(m map[string]*models.CategorySummary, key string, amount float64) {
		summary, ok := m[key]
		if !ok {
			summary = &models.CategorySummary{Key: key}
			m[key] = summary
		}
		summary.Count++
		summary.Revenue += amount
	}

	for _, o := range orders {
		report.TotalRevenue += o.TotalAmount

		bump(byStatus, string(o.Status), o.TotalAmount)

		serviceKey := o.ServiceID
		if o.ServiceName != nil {
			serviceKey = *o.ServiceName
		}
		bump(byService, serviceKey, o.TotalAmount)

		bump(byMonth, o.CreatedAt.Format("2006-01"), o.TotalAmount)
	}

	report.ByStatus = finalizePartition(byStatus, report.TotalCount)
	report.ByService = finalizePartition(byService, report.TotalCount)
	report.ByMonth = finalizePartition(byMonth, report.TotalCount)
	return report
}

func finalizePartition(buckets map[string]*models.CategorySummary, total int) []models.CategorySummary {
	out := make([]models.CategorySummary, 0, len(buckets))
	for _, summary := range buckets {
		if total > 0 {
			summary.Percentage = float64(summary.Count) / float64(total) * 100
		}
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DashboardSummary computes the headline metrics straight in SQL.
func (s *reportService) DashboardSummary() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(startOfDay.Weekday())+1)
	if startOfDay.Weekday() == time.Sunday {
		startOfWeek = startOfDay.AddDate(0, 0, -6)
	}
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status NOT IN ('delivered', 'cancelled')`).
		Scan(&summary.ActiveOrdersCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count active orders: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE payment_status = 'pending' AND status <> 'cancelled'`).
		Scan(&summary.PendingPaymentsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = 'delivered' AND updated_at >= $1`, startOfDay).
		Scan(&summary.DeliveredTodayCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count deliveries today: %w", err)
	}

	revenueQuery := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'paid' AND created_at >= $1`
	if err = s.db.QueryRow(revenueQuery, startOfDay).Scan(&summary.RevenueToday); err != nil {
		return nil, fmt.Errorf("failed to sum revenue today: %w", err)
	}
	if err = s.db.QueryRow(revenueQuery, startOfWeek).Scan(&summary.RevenueThisWeek); err != nil {
		return nil, fmt.Errorf("failed to sum revenue this week: %w", err)
	}
	if err = s.db.QueryRow(revenueQuery, startOfMonth).Scan(&summary.RevenueThisMonth); err != nil {
		return nil, fmt.Errorf("failed to sum revenue this month: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM services WHERE is_active = TRUE`).
		Scan(&summary.ActiveServicesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count active services: %w", err)
	}

	return summary, nil
}
