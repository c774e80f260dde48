package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO métricas principales del dashboard.
type DashboardStatsDTO struct {
	TotalJobs      int             `json:"total_jobs"`
	TotalClients   int             `json:"total_clients"`
	JobsToday      int             `json:"jobs_today"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	CompletionRate decimal.Decimal `json:"completion_rate"` // porcentaje 0-100
}

// DashboardResponse stats más los trabajos recientes con nombre del cliente.
type DashboardResponse struct {
	Stats      DashboardStatsDTO `json:"stats"`
	RecentJobs []JobResponse     `json:"recent_jobs"`
}
