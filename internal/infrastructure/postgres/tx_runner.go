package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de stock atados
// a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewLowStockAlertRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunParts transacción del motor de stock más el repo de consumos (para ConsumeParts).
func (r *TxRunner) RunParts(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	usageRepo repository.JobPartUsageRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewLowStockAlertRepository(tx), NewJobPartUsageRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving transacción del motor de stock más el repo de órdenes de compra (para Receive).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.LowStockAlertRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewLowStockAlertRepository(tx), NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
