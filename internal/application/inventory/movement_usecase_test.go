package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
	testActorID   = "00000000-0000-0000-0000-0000000000a1"
)

func testTenant() domain.TenantContext {
	return domain.TenantContext{CompanyID: testCompanyID, ActorID: testActorID}
}

// seedItem inserta un ítem directamente en el store.
func seedItem(s *memStore, stock, minLevel int) *entity.InventoryItem {
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		CompanyID:     testCompanyID,
		Name:          "Tubo PVC 1/2",
		Category:      "plumbing",
		SKU:           "PLU-0001",
		UnitCost:      decimal.NewFromInt(10),
		SellingPrice:  decimal.NewFromInt(15),
		StockQuantity: stock,
		MinStockLevel: minLevel,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.items[item.ID] = item
	return item
}

func newMovementUC(s *memStore) *appinv.MovementUseCase {
	return appinv.NewMovementUseCase(&memTxRunner{s}, &memMovementRepo{s})
}

func TestPostMovement_InSumaStock(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 10, 2)
	uc := newMovementUC(s)

	mov, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeIn,
		Quantity:        25,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.PreviousQuantity)
	assert.Equal(t, 35, mov.NewQuantity)
	assert.Equal(t, 35, s.items[item.ID].StockQuantity, "la caché del ítem debe reflejar el ledger")
	assert.Len(t, s.movements, 1)
	assert.Equal(t, testActorID, s.movements[0].CreatedBy)
}

func TestPostMovement_OutAbreAlertaAlCruzarElMinimo(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 100, 10)
	uc := newMovementUC(s)

	mov, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeOut,
		Quantity:        95,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, mov.NewQuantity)
	assert.Equal(t, 5, s.items[item.ID].StockQuantity)

	require.Len(t, s.alerts, 1, "quedar en 5 con mínimo 10 debe abrir una alerta")
	for _, a := range s.alerts {
		assert.Equal(t, item.ID, a.InventoryItemID)
		assert.Equal(t, 5, a.CurrentQuantity, "la alerta guarda el snapshot de la cantidad")
		assert.Equal(t, 10, a.MinStockLevel)
		assert.False(t, a.IsAcknowledged)
	}
}

func TestPostMovement_AlertaNoSeDuplicaMientrasSigaAbierta(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 8, 10) // ya por debajo del mínimo
	uc := newMovementUC(s)

	for i := 0; i < 3; i++ {
		_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
			InventoryItemID: item.ID,
			MovementType:    entity.MovementTypeOut,
			Quantity:        1,
		})
		require.NoError(t, err)
	}

	assert.Len(t, s.movements, 3, "cada salida queda en el ledger")
	assert.Len(t, s.alerts, 1, "una sola alerta abierta por ítem, sin importar cuántas caídas")
}

func TestPostMovement_AlertaNuevaTrasReconocerLaAnterior(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 12, 10)
	uc := newMovementUC(s)
	alertUC := appinv.NewAlertUseCase(&memAlertRepo{s})

	_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeOut,
		Quantity:        3,
	})
	require.NoError(t, err)
	require.Len(t, s.alerts, 1)

	var firstID string
	for id := range s.alerts {
		firstID = id
	}
	require.NoError(t, alertUC.Acknowledge(context.Background(), testTenant(), firstID))

	// Nueva caída después del reconocimiento: se abre una alerta nueva.
	_, err = uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeOut,
		Quantity:        2,
	})
	require.NoError(t, err)
	assert.Len(t, s.alerts, 2)
}

func TestAcknowledge_RepetidoRespondeExito(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 12, 10)
	uc := newMovementUC(s)
	alertUC := appinv.NewAlertUseCase(&memAlertRepo{s})

	_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeOut,
		Quantity:        3,
	})
	require.NoError(t, err)
	require.Len(t, s.alerts, 1)

	var alertID string
	for id := range s.alerts {
		alertID = id
	}
	require.NoError(t, alertUC.Acknowledge(context.Background(), testTenant(), alertID))

	// Reconocer de nuevo la misma alerta no es error: la operación es idempotente.
	assert.NoError(t, alertUC.Acknowledge(context.Background(), testTenant(), alertID))
	assert.Len(t, s.alerts, 1)
	assert.True(t, s.alerts[alertID].IsAcknowledged)
}

func TestAcknowledge_AlertaInexistenteEsNotFound(t *testing.T) {
	s := newMemStore()
	alertUC := appinv.NewAlertUseCase(&memAlertRepo{s})

	err := alertUC.Acknowledge(context.Background(), testTenant(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostMovement_OutInsuficienteNoTocaNada(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 100, 10)
	uc := newMovementUC(s)

	_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeOut,
		Quantity:        150,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 100, s.items[item.ID].StockQuantity, "el stock no debe cambiar")
	assert.Empty(t, s.movements, "no debe quedar ningún movimiento en el ledger")
	assert.Empty(t, s.alerts)
}

func TestPostMovement_AdjustmentFijaCantidadAbsoluta(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 100, 10)
	uc := newMovementUC(s)

	mov, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeAdjustment,
		Quantity:        42,
		Notes:           "conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, mov.PreviousQuantity)
	assert.Equal(t, 42, mov.NewQuantity, "adjustment fija el valor objetivo, no un delta")
	assert.Equal(t, 42, s.items[item.ID].StockQuantity)
}

func TestPostMovement_ItemInexistenteRetornaNotFound(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)

	_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: uuid.New().String(),
		MovementType:    entity.MovementTypeIn,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostMovement_ItemDeOtraEmpresaEsInvisible(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 50, 5)
	uc := newMovementUC(s)

	otra := domain.TenantContext{CompanyID: uuid.New().String(), ActorID: testActorID}
	_, err := uc.PostMovement(context.Background(), otra, dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    entity.MovementTypeIn,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"el ítem de otra empresa se comporta como inexistente, nunca como prohibido")
}

func TestPostMovement_TipoInvalido(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 50, 5)
	uc := newMovementUC(s)

	_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
		InventoryItemID: item.ID,
		MovementType:    "transfer",
		Quantity:        1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

// La caché stock_quantity debe coincidir con el ledger bajo escritores
// concurrentes: cada transacción ve el snapshot previo serializado.
func TestPostMovement_ConcurrenciaMantieneLedgerConsistente(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 1000, 0)
	uc := newMovementUC(s)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		typ := entity.MovementTypeIn
		qty := 7
		if i%2 == 1 {
			typ = entity.MovementTypeOut
			qty = 3
		}
		go func(typ string, qty int) {
			defer wg.Done()
			_, err := uc.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
				InventoryItemID: item.ID,
				MovementType:    typ,
				Quantity:        qty,
			})
			assert.NoError(t, err)
		}(typ, qty)
	}
	wg.Wait()

	require.Len(t, s.movements, workers)

	// Cada movimiento debe ser internamente coherente...
	expected := 1000
	for _, m := range s.movements {
		switch m.MovementType {
		case entity.MovementTypeIn:
			assert.Equal(t, m.PreviousQuantity+m.Quantity, m.NewQuantity)
			expected += m.Quantity
		case entity.MovementTypeOut:
			assert.Equal(t, m.PreviousQuantity-m.Quantity, m.NewQuantity)
			expected -= m.Quantity
		}
	}
	// ...y la caché del ítem debe igualar la reconstrucción desde el ledger.
	assert.Equal(t, expected, s.items[item.ID].StockQuantity)
	assert.Equal(t, 1000+10*7-10*3, s.items[item.ID].StockQuantity)
}

// Verificación de interfaz: los fakes deben cumplir los mismos puertos que los
// repos reales de postgres.
var (
	_ repository.InventoryItemRepository = (*memItemRepo)(nil)
	_ repository.StockMovementRepository = (*memMovementRepo)(nil)
	_ repository.LowStockAlertRepository = (*memAlertRepo)(nil)
	_ repository.JobPartUsageRepository  = (*memUsageRepo)(nil)
	_ repository.PurchaseOrderRepository = (*memPurchaseOrderRepo)(nil)
	_ repository.JobRepository           = (*memJobRepo)(nil)
	_ appinv.TxRunner                    = (*memTxRunner)(nil)
)
