package postgres

import (
	"context"
	"fmt"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `m.id, m.company_id, m.inventory_item_id, m.movement_type, m.quantity,
	m.previous_quantity, m.new_quantity, m.reference_id, m.reference_type, m.unit_cost,
	m.notes, m.created_by, m.created_at, i.name AS item_name, i.sku AS item_sku`

const movementFrom = ` FROM stock_movements m JOIN inventory_items i ON i.id = m.inventory_item_id`

// StockMovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: el ledger nunca se actualiza ni se borra.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento en el ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, inventory_item_id, movement_type, quantity,
			previous_quantity, new_quantity, reference_id, reference_type, unit_cost, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.InventoryItemID, movement.MovementType,
		movement.Quantity, movement.PreviousQuantity, movement.NewQuantity,
		nullIfEmpty(movement.ReferenceID), nullIfEmpty(movement.ReferenceType),
		movement.UnitCost, movement.Notes, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByCompany lista movimientos de la empresa con filtros, enriquecidos con
// nombre y SKU del ítem, más el total sin paginar.
func (r *StockMovementRepo) ListByCompany(companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where := ` WHERE m.company_id = $1`
	args := []any{companyID}
	if filter.InventoryItemID != "" {
		args = append(args, filter.InventoryItemID)
		where += fmt.Sprintf(" AND m.inventory_item_id = $%d", len(args))
	}
	if filter.MovementType != "" {
		args = append(args, filter.MovementType)
		where += fmt.Sprintf(" AND m.movement_type = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+movementFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + movementColumns + movementFrom + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	list, err := r.queryMovements(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByItem últimos movimientos de un ítem, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByItem(itemID, companyID string, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + movementFrom + `
		WHERE m.inventory_item_id = $1 AND m.company_id = $2
		ORDER BY m.created_at DESC LIMIT $3`
	return r.queryMovements(query, itemID, companyID, limit)
}

func (r *StockMovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var refID, refType *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.InventoryItemID, &m.MovementType, &m.Quantity,
			&m.PreviousQuantity, &m.NewQuantity, &refID, &refType, &m.UnitCost,
			&m.Notes, &m.CreatedBy, &m.CreatedAt, &m.ItemName, &m.ItemSKU,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
