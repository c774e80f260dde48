// Package analytics contiene los casos de uso de reportes: el dashboard de la
// empresa y los agregados de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

const dashboardRecentJobs = 5 // trabajos recientes en el widget del dashboard

// DashboardUseCase arma el resumen operativo de la empresa: totales de trabajos
// y clientes, trabajos agendados hoy, ingresos del mes (trabajos completados) y
// tasa de completitud, más los últimos trabajos con nombre de cliente.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las stats pueden
// venir de un StatsCache con TTL corto; los trabajos recientes siempre se leen
// frescos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	jobRepo       repository.JobRepository
	cache         StatsCache // puede ser nil
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, jobRepo repository.JobRepository, cache StatsCache) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, jobRepo: jobRepo, cache: cache}
}

// GetDashboard construye el DashboardResponse para la empresa indicada.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	stats, err := uc.getStats(ctx, companyID)
	if err != nil {
		return nil, err
	}

	jobs, err := uc.jobRepo.ListRecent(companyID, dashboardRecentJobs)
	if err != nil {
		return nil, fmt.Errorf("dashboard: trabajos recientes: %w", err)
	}

	recent := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		recent = append(recent, toJobSummary(j))
	}

	return &dto.DashboardResponse{Stats: *stats, RecentJobs: recent}, nil
}

// getStats resuelve las métricas: caché primero, si no cinco consultas en paralelo.
func (uc *DashboardUseCase) getStats(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetStats(ctx, companyID)
		if err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("caché de dashboard no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	type moneyResult struct {
		v   decimal.Decimal
		err error
	}

	jobsCh := make(chan countResult, 1)
	clientsCh := make(chan countResult, 1)
	todayCh := make(chan countResult, 1)
	revenueCh := make(chan moneyResult, 1)
	rateCh := make(chan moneyResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountJobs(ctx, companyID)
		jobsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountClients(ctx, companyID)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountJobsScheduledBetween(ctx, companyID, todayStart, todayEnd)
		todayCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.SumCompletedJobRevenue(ctx, companyID, monthStart)
		revenueCh <- moneyResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.CompletionRate(ctx, companyID)
		rateCh <- moneyResult{v, err}
	}()

	jobs := <-jobsCh
	clients := <-clientsCh
	today := <-todayCh
	revenue := <-revenueCh
	rate := <-rateCh

	if jobs.err != nil {
		return nil, fmt.Errorf("dashboard: total de trabajos: %w", jobs.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: total de clientes: %w", clients.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: trabajos de hoy: %w", today.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", revenue.err)
	}
	if rate.err != nil {
		return nil, fmt.Errorf("dashboard: tasa de completitud: %w", rate.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalJobs:      jobs.n,
		TotalClients:   clients.n,
		JobsToday:      today.n,
		MonthlyRevenue: revenue.v.Round(2),
		CompletionRate: rate.v.Round(2),
	}

	if uc.cache != nil {
		if err := uc.cache.SetStats(ctx, companyID, stats); err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo cachear el dashboard")
		}
	}
	return stats, nil
}

func toJobSummary(j *entity.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                   j.ID,
		Title:                j.Title,
		ClientID:             j.ClientID,
		ClientName:           j.ClientName,
		ServiceType:          j.ServiceType,
		Status:               j.Status,
		Priority:             j.Priority,
		ScheduledDate:        j.ScheduledDate,
		CompletedDate:        j.CompletedDate,
		EstimatedDuration:    j.EstimatedDuration,
		ActualDuration:       j.ActualDuration,
		EstimatedCost:        j.EstimatedCost,
		ActualCost:           j.ActualCost,
		AssignedTechnicianID: j.AssignedTechnicianID,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}
}
