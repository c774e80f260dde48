package analytics

import (
	"context"

	"github.com/jobberpro/fieldservice-api/internal/application/dto"
)

// StatsCache caché opcional de las estadísticas del dashboard (TTL corto).
// Un miss devuelve (nil, nil); los errores de infraestructura se degradan a
// miss en el caso de uso, nunca tumban la petición.
type StatsCache interface {
	GetStats(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error)
	SetStats(ctx context.Context, companyID string, stats *dto.DashboardStatsDTO) error
}
