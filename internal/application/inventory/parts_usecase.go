package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// PartsUseCase registra consumos de repuestos en trabajos: valida disponibilidad,
// crea el registro facturable y descuenta el stock con un movimiento "out", todo
// en una sola transacción.
type PartsUseCase struct {
	txRunner  TxRunner
	jobRepo   repository.JobRepository
	usageRepo repository.JobPartUsageRepository
}

// NewPartsUseCase construye el caso de uso.
func NewPartsUseCase(txRunner TxRunner, jobRepo repository.JobRepository, usageRepo repository.JobPartUsageRepository) *PartsUseCase {
	return &PartsUseCase{txRunner: txRunner, jobRepo: jobRepo, usageRepo: usageRepo}
}

// ConsumeParts consume quantity_used unidades del ítem para el trabajo indicado.
// Precio efectivo: unit_price del request, o selling_price del ítem si viene vacío.
// total_cost = precio efectivo * cantidad.
func (uc *PartsUseCase) ConsumeParts(ctx context.Context, tc domain.TenantContext, in dto.ConsumePartsRequest) (*entity.JobPartUsage, error) {
	if !tc.Valid() || in.JobID == "" || in.InventoryItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityUsed <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// El trabajo debe existir en la empresa; el título viaja en la nota del movimiento.
	job, err := uc.jobRepo.GetByID(in.JobID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var usage *entity.JobPartUsage

	err = uc.txRunner.RunParts(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		usageRepo repository.JobPartUsageRepository,
	) error {
		// Bloquea el ítem: disponibilidad, usage y movimiento quedan serializados.
		item, err := itemRepo.GetForUpdate(in.InventoryItemID, tc.CompanyID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.StockQuantity < in.QuantityUsed {
			return domain.ErrInsufficientStock
		}

		unitPrice := item.SellingPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		usage = &entity.JobPartUsage{
			ID:              uuid.New().String(),
			CompanyID:       tc.CompanyID,
			JobID:           job.ID,
			InventoryItemID: item.ID,
			QuantityUsed:    in.QuantityUsed,
			UnitPrice:       unitPrice,
			TotalCost:       unitPrice.Mul(decimal.NewFromInt(int64(in.QuantityUsed))),
			Notes:           in.Notes,
			CreatedAt:       now,
		}
		if err := usageRepo.Create(usage); err != nil {
			return err
		}

		next := item.StockQuantity - in.QuantityUsed
		unitCost := item.UnitCost
		movement := &entity.StockMovement{
			ID:               uuid.New().String(),
			CompanyID:        tc.CompanyID,
			InventoryItemID:  item.ID,
			MovementType:     entity.MovementTypeOut,
			Quantity:         in.QuantityUsed,
			PreviousQuantity: item.StockQuantity,
			NewQuantity:      next,
			ReferenceID:      job.ID,
			ReferenceType:    entity.ReferenceTypeJob,
			UnitCost:         &unitCost,
			Notes:            fmt.Sprintf("Repuestos usados en trabajo %s", job.Title),
			CreatedBy:        tc.ActorID,
			CreatedAt:        now,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if err := itemRepo.UpdateStockQuantity(item.ID, tc.CompanyID, next); err != nil {
			return err
		}

		if next <= item.MinStockLevel {
			return maybeAlert(alertRepo, tc.CompanyID, item.ID, next, item.MinStockLevel, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// ListByJob devuelve los consumos del trabajo, enriquecidos con nombre/SKU del ítem.
func (uc *PartsUseCase) ListByJob(_ context.Context, companyID, jobID string) ([]*entity.JobPartUsage, error) {
	return uc.usageRepo.ListByJob(jobID, companyID)
}
