package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

func newPurchaseUC(s *memStore) *appinv.PurchaseOrderUseCase {
	return appinv.NewPurchaseOrderUseCase(&memTxRunner{s}, &memPurchaseOrderRepo{s}, &memItemRepo{s})
}

func TestCreatePurchaseOrder_CalculaTotalYArrancaPendiente(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 5, 2)
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: item.ID, Quantity: 10, UnitCost: decimal.NewFromFloat(8.50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderPending, po.Status)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(85)), "total = 10 * 8.50")
	assert.True(t, strings.HasPrefix(po.PONumber, "PO-"), "número legible PO-YYYYMMDD-XXXXXXXX")
	require.Len(t, po.Items, 1)
	assert.Equal(t, 0, po.Items[0].ReceivedQuantity, "las líneas arrancan sin recepción")
}

func TestCreatePurchaseOrder_ItemInexistenteFalla(t *testing.T) {
	s := newMemStore()
	uc := newPurchaseUC(s)

	_, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: uuid.New().String(), Quantity: 1, UnitCost: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_SumaStockYRegistraMovimientosIn(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 5, 2)
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: item.ID, Quantity: 10, UnitCost: decimal.NewFromFloat(8.50)},
		},
	})
	require.NoError(t, err)

	received, err := uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{{InventoryItemID: item.ID, ReceivedQuantity: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderReceived, received.Status)
	require.NotNil(t, received.ReceivedDate)
	assert.Equal(t, 10, received.Items[0].ReceivedQuantity)

	// Stock 5 + 10 = 15, con movimiento "in" referenciando la orden.
	assert.Equal(t, 15, s.items[item.ID].StockQuantity)
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeIn, mov.MovementType)
	assert.Equal(t, po.ID, mov.ReferenceID)
	assert.Equal(t, entity.ReferenceTypePurchaseOrder, mov.ReferenceType)
	require.NotNil(t, mov.UnitCost)
	assert.True(t, mov.UnitCost.Equal(decimal.NewFromFloat(8.50)), "el costo viaja desde la línea")
}

func TestReceive_ParcialTambienMarcaRecibida(t *testing.T) {
	s := newMemStore()
	itemA := seedItem(s, 0, 2)
	itemB := &entity.InventoryItem{
		ID: uuid.New().String(), CompanyID: testCompanyID, Name: "Válvula",
		Category: "plumbing", SKU: "PLU-0002", IsActive: true,
	}
	s.items[itemB.ID] = itemB
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: itemA.ID, Quantity: 10, UnitCost: decimal.NewFromInt(2)},
			{InventoryItemID: itemB.ID, Quantity: 4, UnitCost: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	// Solo llega una de las dos líneas, y parcial.
	received, err := uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{{InventoryItemID: itemA.ID, ReceivedQuantity: 6}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderReceived, received.Status)
	assert.Equal(t, 6, s.items[itemA.ID].StockQuantity)
	assert.Equal(t, 0, s.items[itemB.ID].StockQuantity, "la línea no recibida no toca stock")
	assert.Len(t, s.movements, 1, "un movimiento por línea recibida, no por línea ordenada")
}

func TestReceive_OrdenYaRecibidaEsConflicto(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 0, 2)
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: item.ID, Quantity: 3, UnitCost: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{{InventoryItemID: item.ID, ReceivedQuantity: 3}},
	})
	require.NoError(t, err)

	// Segunda recepción: la orden ya es terminal.
	_, err = uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{{InventoryItemID: item.ID, ReceivedQuantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, s.items[item.ID].StockQuantity, "la recepción duplicada no suma stock")
}

func TestReceive_ItemAjenoALaOrdenRevierteTodo(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 0, 2)
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: item.ID, Quantity: 5, UnitCost: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{
			{InventoryItemID: item.ID, ReceivedQuantity: 5},
			{InventoryItemID: uuid.New().String(), ReceivedQuantity: 1}, // no pertenece
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 0, s.items[item.ID].StockQuantity, "la línea válida también se revierte")
	assert.Empty(t, s.movements)
	assert.Equal(t, entity.PurchaseOrderPending, s.orders[po.ID].Status)
}

func TestUpdateStatus_TransicionesTerminales(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, 0, 2)
	uc := newPurchaseUC(s)

	po, err := uc.CreatePurchaseOrder(context.Background(), testTenant(), dto.CreatePurchaseOrderRequest{
		SupplierName: "Distribuidora Norte",
		Items: []dto.PurchaseOrderItemRequest{
			{InventoryItemID: item.ID, Quantity: 5, UnitCost: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), testTenant(), po.ID, entity.PurchaseOrderOrdered))
	require.NoError(t, uc.UpdateStatus(context.Background(), testTenant(), po.ID, entity.PurchaseOrderCancelled))

	// Cancelada: cualquier transición posterior es conflicto.
	err = uc.UpdateStatus(context.Background(), testTenant(), po.ID, entity.PurchaseOrderOrdered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Y tampoco se puede recibir.
	_, err = uc.Receive(context.Background(), testTenant(), po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveLineRequest{{InventoryItemID: item.ID, ReceivedQuantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	s := newMemStore()
	uc := newPurchaseUC(s)

	err := uc.UpdateStatus(context.Background(), testTenant(), uuid.New().String(), "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
