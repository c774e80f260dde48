package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/inventory"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// ItemUseCase CRUD de ítems de inventario, incluida la asignación de SKU y el
// movimiento inicial de stock.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	movRepo  repository.StockMovementRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.InventoryItemRepository, movRepo repository.StockMovementRepository) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// CreateItem crea un ítem. Sin SKU explícito se genera {PREFIJO}-{NNNN} a partir
// de la categoría; con SKU explícito se valida la unicidad por empresa. Si el
// stock inicial es mayor a cero se registra el movimiento "in" fundacional con
// previous_quantity = 0, en la misma transacción que el insert del ítem.
func (uc *ItemUseCase) CreateItem(ctx context.Context, tc domain.TenantContext, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if !tc.Valid() || in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.StockQuantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}

	sku := in.SKU
	if sku == "" {
		var err error
		sku, err = uc.nextSKU(tc.CompanyID, in.Category)
		if err != nil {
			return nil, err
		}
	}

	// Chequeo previo de colisión; el índice único (company_id, sku) respalda la
	// carrera entre el chequeo y el insert.
	existing, err := uc.itemRepo.GetBySKU(tc.CompanyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:              uuid.New().String(),
		CompanyID:       tc.CompanyID,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		SKU:             sku,
		SupplierName:    in.SupplierName,
		SupplierContact: in.SupplierContact,
		UnitCost:        in.UnitCost,
		SellingPrice:    in.SellingPrice,
		StockQuantity:   in.StockQuantity,
		MinStockLevel:   in.MinStockLevel,
		MaxStockLevel:   in.MaxStockLevel,
		Location:        in.Location,
		Barcode:         in.Barcode,
		IsActive:        true,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		_ repository.LowStockAlertRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if in.StockQuantity > 0 {
			unitCost := in.UnitCost
			return movRepo.Create(&entity.StockMovement{
				ID:               uuid.New().String(),
				CompanyID:        tc.CompanyID,
				InventoryItemID:  item.ID,
				MovementType:     entity.MovementTypeIn,
				Quantity:         in.StockQuantity,
				PreviousQuantity: 0,
				NewQuantity:      in.StockQuantity,
				ReferenceType:    entity.ReferenceTypeInitialStock,
				UnitCost:         &unitCost,
				Notes:            "Stock inicial",
				CreatedBy:        tc.ActorID,
				CreatedAt:        now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// nextSKU deriva el prefijo de la categoría y asigna el consecutivo siguiente al
// SKU numérico más alto existente para ese prefijo en la empresa.
func (uc *ItemUseCase) nextSKU(companyID, category string) (string, error) {
	prefix := inventory.SKUPrefix(category)
	last, err := uc.itemRepo.LastSKUForPrefix(companyID, prefix)
	if err != nil {
		return "", err
	}
	return inventory.FormatSKU(prefix, inventory.NextSKUSequence(last)), nil
}

// ListItems lista ítems activos con filtros de categoría, búsqueda y stock bajo.
func (uc *ItemUseCase) ListItems(_ context.Context, companyID string, in dto.ItemListRequest) ([]*entity.InventoryItem, int, error) {
	in.DefaultPage()
	return uc.itemRepo.List(companyID, repository.ItemFilter{
		Category: in.Category,
		Search:   in.Search,
		LowStock: in.LowStock,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
}

// GetItem devuelve un ítem con sus últimos movimientos (proyección de lectura).
func (uc *ItemUseCase) GetItem(_ context.Context, companyID, itemID string) (*entity.InventoryItem, []*entity.StockMovement, error) {
	item, err := uc.itemRepo.GetByID(itemID, companyID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByItem(itemID, companyID, 10)
	if err != nil {
		return nil, nil, err
	}
	return item, movements, nil
}

// UpdateItem aplica una actualización parcial de campos descriptivos. La cantidad
// de stock no se toca por aquí: solo cambia a través del motor de movimientos.
func (uc *ItemUseCase) UpdateItem(_ context.Context, tc domain.TenantContext, itemID string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(itemID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.SupplierName != nil {
		item.SupplierName = *in.SupplierName
	}
	if in.SupplierContact != nil {
		item.SupplierContact = *in.SupplierContact
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.SellingPrice != nil {
		item.SellingPrice = *in.SellingPrice
	}
	if in.MinStockLevel != nil {
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		item.MaxStockLevel = in.MaxStockLevel
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem baja lógica (is_active=false); el ítem y su ledger se conservan.
func (uc *ItemUseCase) DeactivateItem(_ context.Context, tc domain.TenantContext, itemID string) error {
	ok, err := uc.itemRepo.Deactivate(itemID, tc.CompanyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
