package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.LowStockAlertRepository = (*LowStockAlertRepo)(nil)

// LowStockAlertRepo implementación del puerto LowStockAlertRepository sobre PostgreSQL.
// El índice único parcial (company_id, inventory_item_id) WHERE NOT is_acknowledged
// garantiza a lo sumo una alerta abierta por ítem, incluso bajo carreras.
type LowStockAlertRepo struct {
	q Querier
}

// NewLowStockAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewLowStockAlertRepository(q Querier) *LowStockAlertRepo {
	return &LowStockAlertRepo{q: q}
}

// Create inserta una alerta abierta. ErrDuplicate si ya hay una sin reconocer
// para el ítem (violación del índice parcial).
func (r *LowStockAlertRepo) Create(alert *entity.LowStockAlert) error {
	query := `
		INSERT INTO low_stock_alerts (id, company_id, inventory_item_id, current_quantity, min_stock_level, alert_date, is_acknowledged)
		VALUES ($1, $2, $3, $4, $5, $6, false)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CompanyID, alert.InventoryItemID,
		alert.CurrentQuantity, alert.MinStockLevel, alert.AlertDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert low stock alert: %w", err)
	}
	return nil
}

// FindUnacknowledged devuelve la alerta abierta del ítem, o nil si no hay.
func (r *LowStockAlertRepo) FindUnacknowledged(companyID, itemID string) (*entity.LowStockAlert, error) {
	query := `
		SELECT id, company_id, inventory_item_id, current_quantity, min_stock_level, alert_date,
			is_acknowledged, COALESCE(acknowledged_by, ''), acknowledged_at
		FROM low_stock_alerts
		WHERE company_id = $1 AND inventory_item_id = $2 AND is_acknowledged = false`
	var a entity.LowStockAlert
	err := r.q.QueryRow(context.Background(), query, companyID, itemID).Scan(
		&a.ID, &a.CompanyID, &a.InventoryItemID, &a.CurrentQuantity, &a.MinStockLevel,
		&a.AlertDate, &a.IsAcknowledged, &a.AcknowledgedBy, &a.AcknowledgedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unacknowledged alert: %w", err)
	}
	return &a, nil
}

// List devuelve alertas enriquecidas con nombre, SKU y stock actual del ítem.
// acknowledged nil = todas; true/false filtra por estado.
func (r *LowStockAlertRepo) List(companyID string, acknowledged *bool) ([]*entity.LowStockAlert, error) {
	query := `
		SELECT a.id, a.company_id, a.inventory_item_id, a.current_quantity, a.min_stock_level,
			a.alert_date, a.is_acknowledged, COALESCE(a.acknowledged_by, ''), a.acknowledged_at,
			i.name, i.sku, i.stock_quantity
		FROM low_stock_alerts a
		JOIN inventory_items i ON i.id = a.inventory_item_id
		WHERE a.company_id = $1`
	args := []any{companyID}
	if acknowledged != nil {
		args = append(args, *acknowledged)
		query += fmt.Sprintf(" AND a.is_acknowledged = $%d", len(args))
	}
	query += " ORDER BY a.alert_date DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.InventoryItemID, &a.CurrentQuantity, &a.MinStockLevel,
			&a.AlertDate, &a.IsAcknowledged, &a.AcknowledgedBy, &a.AcknowledgedAt,
			&a.ItemName, &a.ItemSKU, &a.CurrentStock,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Acknowledge marca la alerta como reconocida. Idempotente: reconocer una alerta
// ya reconocida vuelve a responder éxito. Devuelve false solo si no existe en la empresa.
func (r *LowStockAlertRepo) Acknowledge(id, companyID, userID string, at time.Time) (bool, error) {
	query := `
		UPDATE low_stock_alerts SET is_acknowledged = true, acknowledged_by = $3, acknowledged_at = $4
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, id, companyID, userID, at)
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
