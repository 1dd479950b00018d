package models

// CategorySummary is one bucket of a report partition: a category key with
// its order count, revenue and share of the total.
type CategorySummary struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// OrderReport aggregates a fetched order set for a chosen time window.
// Each partition's counts sum to TotalCount.
type OrderReport struct {
	TotalCount   int               `json:"total_count"`
	TotalRevenue float64           `json:"total_revenue"`
	ByStatus     []CategorySummary `json:"by_status"`
	ByService    []CategorySummary `json:"by_service"`
	ByMonth      []CategorySummary `json:"by_month"`
}

// ReportRequestParams holds common parameters for requesting reports.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	ActiveOrdersCount    int     `json:"active_orders_count"`
	PendingPaymentsCount int     `json:"pending_payments_count"`
	DeliveredTodayCount  int     `json:"delivered_today_count"`
	RevenueToday         float64 `json:"revenue_today"`
	RevenueThisWeek      float64 `json:"revenue_this_week"`
	RevenueThisMonth     float64 `json:"revenue_this_month"`
	ActiveServicesCount  int     `json:"active_services_count"`
}
