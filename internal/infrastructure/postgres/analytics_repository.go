package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación read-only para dashboard y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool (no requiere tx).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountJobs total de trabajos de la empresa.
func (r *AnalyticsRepo) CountJobs(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM jobs WHERE company_id = $1`, companyID)
}

// CountClients total de clientes de la empresa.
func (r *AnalyticsRepo) CountClients(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM clients WHERE company_id = $1`, companyID)
}

// CountJobsScheduledBetween trabajos agendados dentro del rango.
func (r *AnalyticsRepo) CountJobsScheduledBetween(ctx context.Context, companyID string, from, to time.Time) (int, error) {
	return r.count(ctx,
		`SELECT count(*) FROM jobs WHERE company_id = $1 AND scheduled_date BETWEEN $2 AND $3`,
		companyID, from, to)
}

// SumCompletedJobRevenue suma coalesce(actual_cost, estimated_cost) de trabajos
// completados desde la fecha indicada.
func (r *AnalyticsRepo) SumCompletedJobRevenue(ctx context.Context, companyID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(actual_cost, estimated_cost)), 0)
		FROM jobs
		WHERE company_id = $1 AND status = 'completed' AND completed_date >= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum completed job revenue: %w", err)
	}
	return total, nil
}

// CompletionRate porcentaje de trabajos completados sobre el total (0 si no hay trabajos).
func (r *AnalyticsRepo) CompletionRate(ctx context.Context, companyID string) (decimal.Decimal, error) {
	query := `
		SELECT CASE WHEN count(*) = 0 THEN 0
			ELSE count(*) FILTER (WHERE status = 'completed') * 100.0 / count(*)
		END
		FROM jobs WHERE company_id = $1`
	var rate decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&rate); err != nil {
		return decimal.Zero, fmt.Errorf("completion rate: %w", err)
	}
	return rate, nil
}

// InventoryTotals agregados del inventario activo de la empresa.
func (r *AnalyticsRepo) InventoryTotals(ctx context.Context, companyID string) (*repository.InventoryTotals, error) {
	query := `
		SELECT count(*),
			COALESCE(SUM(stock_quantity * unit_cost), 0),
			count(*) FILTER (WHERE stock_quantity <= min_stock_level),
			count(*) FILTER (WHERE stock_quantity = 0)
		FROM inventory_items
		WHERE company_id = $1 AND is_active = true`
	totals := &repository.InventoryTotals{CategoryBreakdown: make(map[string]int)}
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&totals.TotalItems, &totals.TotalValue, &totals.LowStockItems, &totals.OutOfStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT category, count(*)
		FROM inventory_items
		WHERE company_id = $1 AND is_active = true
		GROUP BY category`, companyID)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category breakdown: %w", err)
		}
		totals.CategoryBreakdown[category] = n
	}
	return totals, rows.Err()
}

// MovementSummarySince cantidad de movimientos por tipo desde la fecha indicada.
func (r *AnalyticsRepo) MovementSummarySince(ctx context.Context, companyID string, since time.Time) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT movement_type, count(*)
		FROM stock_movements
		WHERE company_id = $1 AND created_at >= $2
		GROUP BY movement_type`, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	defer rows.Close()
	summary := make(map[string]int)
	for rows.Next() {
		var movementType string
		var n int
		if err := rows.Scan(&movementType, &n); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		summary[movementType] = n
	}
	return summary, rows.Err()
}

// TopUsedItems ítems más consumidos en trabajos, por cantidad total descendente.
func (r *AnalyticsRepo) TopUsedItems(ctx context.Context, companyID string, limit int) ([]repository.TopUsedItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT u.inventory_item_id, i.name, i.sku, SUM(u.quantity_used), SUM(u.total_cost)
		FROM job_part_usages u
		JOIN inventory_items i ON i.id = u.inventory_item_id
		WHERE u.company_id = $1
		GROUP BY u.inventory_item_id, i.name, i.sku
		ORDER BY SUM(u.quantity_used) DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("top used items: %w", err)
	}
	defer rows.Close()
	var list []repository.TopUsedItem
	for rows.Next() {
		var t repository.TopUsedItem
		if err := rows.Scan(&t.InventoryItemID, &t.ItemName, &t.ItemSKU, &t.TotalUsed, &t.TotalCost); err != nil {
			return nil, fmt.Errorf("scan top used item: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
