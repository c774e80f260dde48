package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

func newItemUC(s *memStore) *appinv.ItemUseCase {
	return appinv.NewItemUseCase(&memTxRunner{s}, &memItemRepo{s}, &memMovementRepo{s})
}

func TestCreateItem_GeneraSKUConsecutivoPorCategoria(t *testing.T) {
	s := newMemStore()
	uc := newItemUC(s)

	first, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Tubo PVC 1/2",
		Category: "plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, "PLU-0001", first.SKU)

	second, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Codo PVC 1/2",
		Category: "plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, "PLU-0002", second.SKU, "el consecutivo sigue al SKU más alto del prefijo")

	// Otra categoría arranca su propia secuencia.
	tool, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Llave stillson",
		Category: "tools",
	})
	require.NoError(t, err)
	assert.Equal(t, "TOO-0001", tool.SKU)
}

func TestCreateItem_SKUExplicitoDuplicadoFalla(t *testing.T) {
	s := newMemStore()
	uc := newItemUC(s)

	_, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Tubo PVC 1/2",
		Category: "plumbing",
		SKU:      "CUSTOM-1",
	})
	require.NoError(t, err)

	_, err = uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Otro tubo",
		Category: "plumbing",
		SKU:      "CUSTOM-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreateItem_StockInicialRegistraMovimientoFundacional(t *testing.T) {
	s := newMemStore()
	uc := newItemUC(s)

	item, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:          "Filtro HVAC",
		Category:      "hvac",
		UnitCost:      decimal.NewFromFloat(12.50),
		StockQuantity: 30,
		MinStockLevel: 5,
	})
	require.NoError(t, err)

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeIn, mov.MovementType)
	assert.Equal(t, item.ID, mov.InventoryItemID)
	assert.Equal(t, 0, mov.PreviousQuantity, "el movimiento fundacional parte de cero")
	assert.Equal(t, 30, mov.NewQuantity)
	assert.Equal(t, entity.ReferenceTypeInitialStock, mov.ReferenceType)
	require.NotNil(t, mov.UnitCost)
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromFloat(12.50)))
}

func TestCreateItem_SinStockInicialNoHayMovimiento(t *testing.T) {
	s := newMemStore()
	uc := newItemUC(s)

	_, err := uc.CreateItem(context.Background(), testTenant(), dto.CreateItemRequest{
		Name:     "Sellador",
		Category: "supplies",
	})
	require.NoError(t, err)
	assert.Empty(t, s.movements)
}

func TestUpdateItem_NoTocaElStock(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 77, 10)
	uc := newItemUC(s)

	newName := "Tubo PVC 3/4"
	updated, err := uc.UpdateItem(context.Background(), testTenant(), item.ID, dto.UpdateItemRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tubo PVC 3/4", updated.Name)
	assert.Equal(t, 77, s.items[item.ID].StockQuantity,
		"la cantidad solo cambia a través del motor de movimientos")
}

func TestDeactivateItem_BajaLogica(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 10, 2)
	uc := newItemUC(s)

	require.NoError(t, uc.DeactivateItem(context.Background(), testTenant(), item.ID))
	assert.False(t, s.items[item.ID].IsActive, "el ítem se conserva, solo pierde visibilidad")

	// Segunda baja del mismo ítem: ya no se encuentra activo.
	err := uc.DeactivateItem(context.Background(), testTenant(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetItem_IncluyeMovimientosRecientes(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 50, 5)
	movUC := newMovementUC(s)
	uc := newItemUC(s)

	for i := 0; i < 3; i++ {
		_, err := movUC.PostMovement(context.Background(), testTenant(), dto.CreateMovementRequest{
			InventoryItemID: item.ID,
			MovementType:    entity.MovementTypeIn,
			Quantity:        1,
		})
		require.NoError(t, err)
	}

	got, movements, err := uc.GetItem(context.Background(), testCompanyID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 53, got.StockQuantity)
	assert.Len(t, movements, 3)
}
