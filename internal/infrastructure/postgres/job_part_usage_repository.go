package postgres

import (
	"context"
	"fmt"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.JobPartUsageRepository = (*JobPartUsageRepo)(nil)

// JobPartUsageRepo implementación del puerto JobPartUsageRepository sobre PostgreSQL.
// Registros inmutables: solo INSERT y SELECT.
type JobPartUsageRepo struct {
	q Querier
}

// NewJobPartUsageRepository construye el adaptador de consumos. Pasar pool o tx (Querier).
func NewJobPartUsageRepository(q Querier) *JobPartUsageRepo {
	return &JobPartUsageRepo{q: q}
}

// Create inserta un consumo de repuesto.
func (r *JobPartUsageRepo) Create(usage *entity.JobPartUsage) error {
	query := `
		INSERT INTO job_part_usages (id, company_id, job_id, inventory_item_id, quantity_used, unit_price, total_cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		usage.ID, usage.CompanyID, usage.JobID, usage.InventoryItemID,
		usage.QuantityUsed, usage.UnitPrice, usage.TotalCost, usage.Notes, usage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job part usage: %w", err)
	}
	return nil
}

// ListByJob consumos del trabajo enriquecidos con nombre y SKU del ítem.
func (r *JobPartUsageRepo) ListByJob(jobID, companyID string) ([]*entity.JobPartUsage, error) {
	query := `
		SELECT u.id, u.company_id, u.job_id, u.inventory_item_id, u.quantity_used,
			u.unit_price, u.total_cost, u.notes, u.created_at, i.name, i.sku
		FROM job_part_usages u
		JOIN inventory_items i ON i.id = u.inventory_item_id
		WHERE u.job_id = $1 AND u.company_id = $2
		ORDER BY u.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, jobID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list job part usages: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobPartUsage
	for rows.Next() {
		var u entity.JobPartUsage
		if err := rows.Scan(
			&u.ID, &u.CompanyID, &u.JobID, &u.InventoryItemID, &u.QuantityUsed,
			&u.UnitPrice, &u.TotalCost, &u.Notes, &u.CreatedAt, &u.ItemName, &u.ItemSKU,
		); err != nil {
			return nil, fmt.Errorf("scan job part usage: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
