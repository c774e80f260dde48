package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, company_id, po_number, supplier_name, supplier_contact, status,
	order_date, expected_delivery_date, received_date, total_amount, notes, created_by,
	created_at, updated_at`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
// Cabecera en purchase_orders, líneas en purchase_order_items; se cargan juntas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.CompanyID, po.PONumber, po.SupplierName, po.SupplierContact, po.Status,
		po.OrderDate, po.ExpectedDeliveryDate, po.ReceivedDate, po.TotalAmount, po.Notes,
		po.CreatedBy, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Items {
		item := &po.Items[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_items (id, purchase_order_id, inventory_item_id, quantity, unit_cost, total_cost, received_quantity, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.PurchaseOrderID, item.InventoryItemID, item.Quantity,
			item.UnitCost, item.TotalCost, item.ReceivedQuantity, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. Nil si no existe en la empresa.
func (r *PurchaseOrderRepo) GetByID(id, companyID string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 AND company_id = $2`
	return r.getOne(query, id, companyID)
}

// GetForUpdate obtiene la orden bloqueando la cabecera (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *PurchaseOrderRepo) GetForUpdate(id, companyID string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 AND company_id = $2 FOR UPDATE`
	return r.getOne(query, id, companyID)
}

// ListByCompany lista órdenes (con líneas), opcionalmente filtradas por estado.
func (r *PurchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY order_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	ids := make([]string, 0)
	byID := make(map[string]*entity.PurchaseOrder)
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(scanPOFields(&po)...); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
		ids = append(ids, po.ID)
		byID[po.ID] = &po
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	// Líneas de todas las órdenes de la página en una sola consulta.
	itemRows, err := r.q.Query(context.Background(), `
		SELECT id, purchase_order_id, inventory_item_id, quantity, unit_cost, total_cost, received_quantity, notes
		FROM purchase_order_items WHERE purchase_order_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.PurchaseOrderItem
		if err := itemRows.Scan(&it.ID, &it.PurchaseOrderID, &it.InventoryItemID,
			&it.Quantity, &it.UnitCost, &it.TotalCost, &it.ReceivedQuantity, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		if po, ok := byID[it.PurchaseOrderID]; ok {
			po.Items = append(po.Items, it)
		}
	}
	return list, itemRows.Err()
}

// UpdateStatus cambia el estado. Devuelve false si la orden no existe en la empresa.
func (r *PurchaseOrderRepo) UpdateStatus(id, companyID, status string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, status,
	)
	if err != nil {
		return false, fmt.Errorf("update purchase order status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AddLineReceived acumula cantidad recibida sobre la línea del ítem indicado.
func (r *PurchaseOrderRepo) AddLineReceived(poID, inventoryItemID string, receivedQty int) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE purchase_order_items SET received_quantity = received_quantity + $3
		WHERE purchase_order_id = $1 AND inventory_item_id = $2`,
		poID, inventoryItemID, receivedQty,
	)
	if err != nil {
		return fmt.Errorf("add line received: %w", err)
	}
	return nil
}

// MarkReceived marca la orden como received con su fecha de recepción.
func (r *PurchaseOrderRepo) MarkReceived(id, companyID string, receivedAt time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE purchase_orders SET status = $3, received_date = $4, updated_at = now()
		WHERE id = $1 AND company_id = $2`,
		id, companyID, entity.PurchaseOrderReceived, receivedAt,
	)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) getOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(scanPOFields(&po)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, purchase_order_id, inventory_item_id, quantity, unit_cost, total_cost, received_quantity, notes
		FROM purchase_order_items WHERE purchase_order_id = $1`, po.ID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.InventoryItemID,
			&it.Quantity, &it.UnitCost, &it.TotalCost, &it.ReceivedQuantity, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return &po, rows.Err()
}

func scanPOFields(po *entity.PurchaseOrder) []any {
	return []any{
		&po.ID, &po.CompanyID, &po.PONumber, &po.SupplierName, &po.SupplierContact, &po.Status,
		&po.OrderDate, &po.ExpectedDeliveryDate, &po.ReceivedDate, &po.TotalAmount, &po.Notes,
		&po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	}
}
