package services

import (
	"testing"
	"time"

	"cleanstride_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrder(status models.OrderStatus, serviceName string, amount float64, created time.Time) models.Order {
	return models.Order{
		Status:      status,
		ServiceID:   "service-id",
		ServiceName: &serviceName,
		TotalAmount: amount,
		CreatedAt:   created,
	}
}

func TestBuildOrderReportEmpty(t *testing.T) {
	report := BuildOrderReport(nil)

	assert.Equal(t, 0, report.TotalCount)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Empty(t, report.ByStatus)
	assert.Empty(t, report.ByService)
	assert.Empty(t, report.ByMonth)
}

func TestBuildOrderReport(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		reportOrder(models.StatusDelivered, "Deep Clean", 50000, jan),
		reportOrder(models.StatusDelivered, "Deep Clean", 25000, jan),
		reportOrder(models.StatusInProcess, "Repaint", 67500, feb),
		reportOrder(models.StatusCancelled, "Deep Clean", 25000, feb),
	}

	report := BuildOrderReport(orders)

	assert.Equal(t, 4, report.TotalCount)
	assert.Equal(t, 167500.0, report.TotalRevenue)

	byStatus := map[string]models.CategorySummary{}
	for _, s := range report.ByStatus {
		byStatus[s.Key] = s
	}
	assert.Equal(t, 2, byStatus["delivered"].Count)
	assert.Equal(t, 75000.0, byStatus["delivered"].Revenue)
	assert.Equal(t, 50.0, byStatus["delivered"].Percentage)
	assert.Equal(t, 1, byStatus["in_process"].Count)
	assert.Equal(t, 25.0, byStatus["cancelled"].Percentage)

	byService := map[string]models.CategorySummary{}
	for _, s := range report.ByService {
		byService[s.Key] = s
	}
	assert.Equal(t, 3, byService["Deep Clean"].Count)
	assert.Equal(t, 100000.0, byService["Deep Clean"].Revenue)
	assert.Equal(t, 1, byService["Repaint"].Count)

	byMonth := map[string]models.CategorySummary{}
	for _, s := range report.ByMonth {
		byMonth[s.Key] = s
	}
	assert.Equal(t, 2, byMonth["2026-01"].Count)
	assert.Equal(t, 2, byMonth["2026-02"].Count)
}

func TestBuildOrderReportPartitionsSumToTotal(t *testing.T) {
	orders := []models.Order{
		reportOrder(models.StatusPending, "A", 10, time.Now()),
		reportOrder(models.StatusConfirmed, "B", 20, time.Now()),
		reportOrder(models.StatusConfirmed, "A", 30, time.Now()),
		reportOrder(models.StatusDelivered, "C", 40, time.Now()),
		reportOrder(models.StatusDelivered, "C", 50, time.Now()),
	}

	report := BuildOrderReport(orders)

	for _, partition := range [][]models.CategorySummary{report.ByStatus, report.ByService, report.ByMonth} {
		count := 0
		revenue := 0.0
		percentage := 0.0
		for _, s := range partition {
			count += s.Count
			revenue += s.Revenue
			percentage += s.Percentage
		}
		assert.Equal(t, report.TotalCount, count)
		assert.InDelta(t, report.TotalRevenue, revenue, 0.001)
		assert.InDelta(t, 100.0, percentage, 0.001)
	}
}

func TestBuildOrderReportSortsKeys(t *testing.T) {
	orders := []models.Order{
		reportOrder(models.StatusPending, "Zebra", 10, time.Now()),
		reportOrder(models.StatusPending, "Alpha", 10, time.Now()),
	}

	report := BuildOrderReport(orders)

	require.Len(t, report.ByService, 2)
	assert.Equal(t, "Alpha", report.ByService[0].Key)
	assert.Equal(t, "Zebra", report.ByService[1].Key)
}

func TestOrderReportWindowValidation(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewReportService(orderRepo, nil)

	_, err := svc.OrderReport(models.ReportRequestParams{StartDate: "not-a-date"}, "admin-1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.OrderReport(models.ReportRequestParams{EndDate: "01/02/2026"}, "admin-1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.OrderReport(models.ReportRequestParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-02-01",
	}, "admin-1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderReportWindowInclusiveEnd(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewReportService(orderRepo, nil)

	_, err := svc.OrderReport(models.ReportRequestParams{
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
	}, "admin-1", models.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), orderRepo.lastWindowStart)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), orderRepo.lastWindowEnd)
}

func TestOrderReportScopesNonAdmins(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := NewReportService(orderRepo, nil)

	_, err := svc.OrderReport(models.ReportRequestParams{}, "customer-1", models.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, orderRepo.lastWindowCustomerID)
	assert.Equal(t, "customer-1", *orderRepo.lastWindowCustomerID)

	_, err = svc.OrderReport(models.ReportRequestParams{}, "admin-1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, orderRepo.lastWindowCustomerID)
}
