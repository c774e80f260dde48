package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, company_id, name, description, category, sku, supplier_name, supplier_contact,
	unit_cost, selling_price, stock_quantity, min_stock_level, max_stock_level,
	location, barcode, is_active, notes, created_at, updated_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un nuevo ítem. El índice único (company_id, sku) respalda la
// unicidad del SKU por empresa.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Name, item.Description, item.Category, item.SKU,
		item.SupplierName, item.SupplierContact, item.UnitCost, item.SellingPrice,
		item.StockQuantity, item.MinStockLevel, item.MaxStockLevel,
		item.Location, item.Barcode, item.IsActive, item.Notes,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID dentro de la empresa. Nil si no existe.
func (r *InventoryItemRepo) GetByID(id, companyID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 AND company_id = $2`
	return r.getOne(query, id, companyID)
}

// GetForUpdate obtiene el ítem y bloquea su fila (SELECT FOR UPDATE). Solo tiene
// sentido dentro de una transacción del TxRunner.
func (r *InventoryItemRepo) GetForUpdate(id, companyID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 AND company_id = $2 FOR UPDATE`
	return r.getOne(query, id, companyID)
}

// GetBySKU obtiene un ítem por SKU dentro de la empresa. Nil si no existe.
func (r *InventoryItemRepo) GetBySKU(companyID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1 AND sku = $2`
	return r.getOne(query, companyID, sku)
}

// LastSKUForPrefix devuelve el SKU más alto que empieza por "PREFIX-" en la
// empresa, o "" si no existe ninguno. El sufijo de 4 dígitos con ceros a la
// izquierda hace que el orden lexicográfico coincida con el numérico.
func (r *InventoryItemRepo) LastSKUForPrefix(companyID, prefix string) (string, error) {
	query := `
		SELECT sku FROM inventory_items
		WHERE company_id = $1 AND sku LIKE $2
		ORDER BY sku DESC LIMIT 1`
	var sku string
	err := r.q.QueryRow(context.Background(), query, companyID, prefix+"-%").Scan(&sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last sku for prefix: %w", err)
	}
	return sku, nil
}

// List lista ítems activos con filtros y devuelve también el total sin paginar.
func (r *InventoryItemRepo) List(companyID string, filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	where := ` FROM inventory_items WHERE company_id = $1 AND is_active = true`
	args := []any{companyID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}
	if filter.LowStock {
		where += " AND stock_quantity <= min_stock_level"
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory items: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + itemColumns + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(scanItemFields(&it)...); err != nil {
			return nil, 0, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// Update actualiza los campos descriptivos del ítem. stock_quantity no se toca
// por aquí: solo cambia vía UpdateStockQuantity dentro del motor de movimientos.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $3, description = $4, category = $5,
			supplier_name = $6, supplier_contact = $7, unit_cost = $8, selling_price = $9,
			min_stock_level = $10, max_stock_level = $11, location = $12, barcode = $13,
			is_active = $14, notes = $15, updated_at = $16
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Name, item.Description, item.Category,
		item.SupplierName, item.SupplierContact, item.UnitCost, item.SellingPrice,
		item.MinStockLevel, item.MaxStockLevel, item.Location, item.Barcode,
		item.IsActive, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateStockQuantity fija la caché de stock del ítem (usado por el motor de movimientos).
func (r *InventoryItemRepo) UpdateStockQuantity(id, companyID string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET stock_quantity = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// Deactivate baja lógica del ítem. Devuelve false si no existía en la empresa.
func (r *InventoryItemRepo) Deactivate(id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET is_active = false, updated_at = now() WHERE id = $1 AND company_id = $2 AND is_active = true`,
		id, companyID,
	)
	if err != nil {
		return false, fmt.Errorf("deactivate inventory item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *InventoryItemRepo) getOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(scanItemFields(&it)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

func scanItemFields(it *entity.InventoryItem) []any {
	return []any{
		&it.ID, &it.CompanyID, &it.Name, &it.Description, &it.Category, &it.SKU,
		&it.SupplierName, &it.SupplierContact, &it.UnitCost, &it.SellingPrice,
		&it.StockQuantity, &it.MinStockLevel, &it.MaxStockLevel,
		&it.Location, &it.Barcode, &it.IsActive, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt,
	}
}
