package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/inventory"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// MovementUseCase registra movimientos de stock de forma transaccional
// (in, out, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// Por movimiento se ejecutan como unidad atómica:
//  1. inserción del registro inmutable en stock_movements (snapshot previo/nuevo)
//  2. actualización de la caché stock_quantity del ítem
//  3. evaluación de stock bajo y apertura deduplicada de alerta
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// PostMovement valida y aplica un movimiento. La magnitud siempre es no negativa;
// el signo lo determina el tipo. Devuelve el movimiento persistido con NewQuantity.
func (uc *MovementUseCase) PostMovement(ctx context.Context, tc domain.TenantContext, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	if !tc.Valid() || in.InventoryItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.MovementType {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeAdjustment:
	default:
		return nil, domain.ErrInvalidMovementType
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
	) error {
		var err error
		movement, err = applyMovement(itemRepo, movRepo, alertRepo, tc, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements lista el ledger de la empresa con filtros, enriquecido con
// nombre y SKU del ítem (proyección de lectura, nunca persistida).
func (uc *MovementUseCase) ListMovements(_ context.Context, companyID string, in dto.MovementListRequest) ([]*entity.StockMovement, int, error) {
	in.DefaultPage()
	return uc.movRepo.ListByCompany(companyID, repository.MovementFilter{
		InventoryItemID: in.ItemID,
		MovementType:    in.MovementType,
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
}

// applyMovement es el núcleo del motor: bloquea la fila del ítem, calcula la
// transición de cantidad según el tipo, inserta el movimiento con los snapshots
// y actualiza la caché. Debe ejecutarse con repositorios atados a una tx.
//
// Si la cantidad resultante queda en o por debajo del mínimo del ítem se abre
// (o deduplica) la alerta de stock bajo dentro de la misma transacción.
func applyMovement(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	tc domain.TenantContext,
	in dto.CreateMovementRequest,
	now time.Time,
) (*entity.StockMovement, error) {
	// Bloquea la fila del ítem: serializa escritores concurrentes sobre el mismo ítem
	item, err := itemRepo.GetForUpdate(in.InventoryItemID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	previous := item.StockQuantity
	next, err := inventory.NextQuantity(previous, in.Quantity, in.MovementType)
	if err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:               uuid.New().String(),
		CompanyID:        tc.CompanyID,
		InventoryItemID:  item.ID,
		MovementType:     in.MovementType,
		Quantity:         in.Quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		ReferenceID:      in.ReferenceID,
		ReferenceType:    in.ReferenceType,
		UnitCost:         in.UnitCost,
		Notes:            in.Notes,
		CreatedBy:        tc.ActorID,
		CreatedAt:        now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	if err := itemRepo.UpdateStockQuantity(item.ID, tc.CompanyID, next); err != nil {
		return nil, err
	}

	if next <= item.MinStockLevel {
		if err := maybeAlert(alertRepo, tc.CompanyID, item.ID, next, item.MinStockLevel, now); err != nil {
			return nil, err
		}
	}
	return movement, nil
}

// maybeAlert abre una alerta de stock bajo si no existe ya una sin reconocer para
// el ítem. El índice único parcial de low_stock_alerts convierte una carrera de
// doble inserción en un error de duplicado, que aquí se trata como no-op.
func maybeAlert(alertRepo repository.LowStockAlertRepository, companyID, itemID string, current, minLevel int, now time.Time) error {
	existing, err := alertRepo.FindUnacknowledged(companyID, itemID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil // ya hay una alerta abierta; no spamear
	}
	err = alertRepo.Create(&entity.LowStockAlert{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		InventoryItemID: itemID,
		CurrentQuantity: current,
		MinStockLevel:   minLevel,
		AlertDate:       now,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}
