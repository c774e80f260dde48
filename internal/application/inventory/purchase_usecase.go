package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: creación (pending),
// cambio de estado explícito y recepción, que registra cantidades por línea y
// alimenta el motor de stock con movimientos "in".
type PurchaseOrderUseCase struct {
	txRunner TxRunner
	poRepo   repository.PurchaseOrderRepository
	itemRepo repository.InventoryItemRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner TxRunner, poRepo repository.PurchaseOrderRepository, itemRepo repository.InventoryItemRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, poRepo: poRepo, itemRepo: itemRepo}
}

// CreatePurchaseOrder crea la orden en estado pending con sus líneas embebidas.
// total_amount = suma de quantity * unit_cost por línea; cada línea arranca con
// received_quantity = 0.
func (uc *PurchaseOrderUseCase) CreatePurchaseOrder(_ context.Context, tc domain.TenantContext, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if !tc.Valid() || in.SupplierName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	poID := uuid.New().String()
	total := decimal.Zero
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))

	for _, line := range in.Items {
		if line.InventoryItemID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		// Cada ítem referenciado debe existir en la empresa.
		item, err := uc.itemRepo.GetByID(line.InventoryItemID, tc.CompanyID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		lineTotal := line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: poID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
			UnitCost:        line.UnitCost,
			TotalCost:       lineTotal,
			Notes:           line.Notes,
		})
	}

	po := &entity.PurchaseOrder{
		ID:                   poID,
		CompanyID:            tc.CompanyID,
		PONumber:             generatePONumber(),
		SupplierName:         in.SupplierName,
		SupplierContact:      in.SupplierContact,
		Status:               entity.PurchaseOrderPending,
		OrderDate:            now,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		TotalAmount:          total,
		Items:                items,
		Notes:                in.Notes,
		CreatedBy:            tc.ActorID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// GetPurchaseOrder devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetPurchaseOrder(_ context.Context, companyID, poID string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(poID, companyID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// ListPurchaseOrders lista órdenes, opcionalmente por estado.
func (uc *PurchaseOrderUseCase) ListPurchaseOrders(_ context.Context, companyID, status string, page dto.PageRequest) ([]*entity.PurchaseOrder, error) {
	page.DefaultPage()
	return uc.poRepo.ListByCompany(companyID, status, page.Limit, page.Offset)
}

// UpdateStatus transición explícita de estado (ordered, cancelled). Una orden
// recibida o cancelada ya no admite cambios.
func (uc *PurchaseOrderUseCase) UpdateStatus(_ context.Context, tc domain.TenantContext, poID, status string) error {
	if !entity.ValidPurchaseOrderStatus(status) {
		return domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(poID, tc.CompanyID)
	if err != nil {
		return err
	}
	if po == nil {
		return domain.ErrNotFound
	}
	if po.Status == entity.PurchaseOrderReceived || po.Status == entity.PurchaseOrderCancelled {
		return domain.ErrConflict
	}
	ok, err := uc.poRepo.UpdateStatus(poID, tc.CompanyID, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Receive procesa la recepción: por cada par (ítem, cantidad) acumula la cantidad
// recibida en la línea correspondiente y registra un movimiento "in" referenciando
// la orden; al final marca la orden como received con received_date = ahora.
// Una recepción parcial (menos líneas que las ordenadas) también marca received.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, tc domain.TenantContext, poID string, in dto.ReceivePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if !tc.Valid() || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.InventoryItemID == "" || line.ReceivedQuantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	err := uc.txRunner.RunReceiving(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		// Bloquea la cabecera: dos recepciones concurrentes de la misma orden se serializan.
		po, err := poRepo.GetForUpdate(poID, tc.CompanyID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status == entity.PurchaseOrderReceived || po.Status == entity.PurchaseOrderCancelled {
			return domain.ErrConflict
		}

		lines := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			lines[po.Items[i].InventoryItemID] = &po.Items[i]
		}

		for _, recv := range in.Items {
			line, ok := lines[recv.InventoryItemID]
			if !ok {
				return domain.ErrNotFound // el ítem no pertenece a la orden
			}
			if err := poRepo.AddLineReceived(po.ID, line.InventoryItemID, recv.ReceivedQuantity); err != nil {
				return err
			}
			unitCost := line.UnitCost
			_, err := applyMovement(itemRepo, movRepo, alertRepo, tc, dto.CreateMovementRequest{
				InventoryItemID: line.InventoryItemID,
				MovementType:    entity.MovementTypeIn,
				Quantity:        recv.ReceivedQuantity,
				ReferenceID:     po.ID,
				ReferenceType:   entity.ReferenceTypePurchaseOrder,
				UnitCost:        &unitCost,
				Notes:           fmt.Sprintf("Recepción orden de compra %s", po.PONumber),
			}, now)
			if err != nil {
				return err
			}
		}

		return poRepo.MarkReceived(po.ID, tc.CompanyID, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetPurchaseOrder(ctx, tc.CompanyID, poID)
}

// generatePONumber número legible de orden: PO-YYYYMMDD-XXXXXXXX.
func generatePONumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("PO-%s-%s", time.Now().Format("20060102"), suffix)
}
