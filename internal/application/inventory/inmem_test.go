package inventory_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// memStore base de datos en memoria para los tests de los casos de uso de
// inventario. Los repos y el txRunner de abajo operan sobre la misma instancia,
// igual que los repos reales comparten el pool.
type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.InventoryItem
	movements []*entity.StockMovement
	alerts    map[string]*entity.LowStockAlert
	usages    []*entity.JobPartUsage
	orders    map[string]*entity.PurchaseOrder
	jobs      map[string]*entity.Job
	notes     []*entity.JobNote
}

func newMemStore() *memStore {
	return &memStore{
		items:  map[string]*entity.InventoryItem{},
		alerts: map[string]*entity.LowStockAlert{},
		orders: map[string]*entity.PurchaseOrder{},
		jobs:   map[string]*entity.Job{},
	}
}

// snapshot copia profunda del estado, para simular el rollback transaccional.
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for id, it := range s.items {
		c := *it
		cp.items[id] = &c
	}
	for _, m := range s.movements {
		c := *m
		cp.movements = append(cp.movements, &c)
	}
	for id, a := range s.alerts {
		c := *a
		cp.alerts[id] = &c
	}
	for _, u := range s.usages {
		c := *u
		cp.usages = append(cp.usages, &c)
	}
	for id, po := range s.orders {
		c := *po
		c.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		cp.orders[id] = &c
	}
	for id, j := range s.jobs {
		c := *j
		cp.jobs[id] = &c
	}
	cp.notes = append([]*entity.JobNote(nil), s.notes...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.movements = snap.movements
	s.alerts = snap.alerts
	s.usages = snap.usages
	s.orders = snap.orders
	s.jobs = snap.jobs
	s.notes = snap.notes
}

// ── InventoryItemRepository ───────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.InventoryItem) error {
	for _, it := range r.s.items {
		if it.CompanyID == item.CompanyID && it.SKU == item.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) GetByID(id, companyID string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok || it.CompanyID != companyID {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *memItemRepo) GetForUpdate(id, companyID string) (*entity.InventoryItem, error) {
	return r.GetByID(id, companyID)
}

func (r *memItemRepo) GetBySKU(companyID, sku string) (*entity.InventoryItem, error) {
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.SKU == sku {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) LastSKUForPrefix(companyID, prefix string) (string, error) {
	last := ""
	for _, it := range r.s.items {
		if it.CompanyID != companyID || !strings.HasPrefix(it.SKU, prefix+"-") {
			continue
		}
		if it.SKU > last {
			last = it.SKU
		}
	}
	return last, nil
}

func (r *memItemRepo) List(companyID string, filter repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.CompanyID != companyID || !it.IsActive {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.LowStock && !it.IsLowStock() {
			continue
		}
		c := *it
		out = append(out, &c)
	}
	return out, len(out), nil
}

func (r *memItemRepo) Update(item *entity.InventoryItem) error {
	existing, ok := r.s.items[item.ID]
	if !ok || existing.CompanyID != item.CompanyID {
		return domain.ErrNotFound
	}
	c := *item
	c.StockQuantity = existing.StockQuantity // el update descriptivo no toca el stock
	r.s.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) UpdateStockQuantity(id, companyID string, quantity int) error {
	it, ok := r.s.items[id]
	if !ok || it.CompanyID != companyID {
		return domain.ErrNotFound
	}
	it.StockQuantity = quantity
	return nil
}

func (r *memItemRepo) Deactivate(id, companyID string) (bool, error) {
	it, ok := r.s.items[id]
	if !ok || it.CompanyID != companyID || !it.IsActive {
		return false, nil
	}
	it.IsActive = false
	return true, nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) ListByCompany(companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.CompanyID != companyID {
			continue
		}
		if filter.InventoryItemID != "" && m.InventoryItemID != filter.InventoryItemID {
			continue
		}
		if filter.MovementType != "" && m.MovementType != filter.MovementType {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out, len(out), nil
}

func (r *memMovementRepo) ListByItem(itemID, companyID string, limit int) ([]*entity.StockMovement, error) {
	out, _, err := r.ListByCompany(companyID, repository.MovementFilter{InventoryItemID: itemID})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── LowStockAlertRepository ───────────────────────────────────────────────────

type memAlertRepo struct{ s *memStore }

func (r *memAlertRepo) Create(alert *entity.LowStockAlert) error {
	// Refleja el índice único parcial: una sola alerta abierta por ítem.
	for _, a := range r.s.alerts {
		if a.CompanyID == alert.CompanyID && a.InventoryItemID == alert.InventoryItemID && !a.IsAcknowledged {
			return domain.ErrDuplicate
		}
	}
	c := *alert
	r.s.alerts[alert.ID] = &c
	return nil
}

func (r *memAlertRepo) FindUnacknowledged(companyID, itemID string) (*entity.LowStockAlert, error) {
	for _, a := range r.s.alerts {
		if a.CompanyID == companyID && a.InventoryItemID == itemID && !a.IsAcknowledged {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) List(companyID string, acknowledged *bool) ([]*entity.LowStockAlert, error) {
	var out []*entity.LowStockAlert
	for _, a := range r.s.alerts {
		if a.CompanyID != companyID {
			continue
		}
		if acknowledged != nil && a.IsAcknowledged != *acknowledged {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *memAlertRepo) Acknowledge(id, companyID, userID string, at time.Time) (bool, error) {
	a, ok := r.s.alerts[id]
	if !ok || a.CompanyID != companyID {
		return false, nil
	}
	a.IsAcknowledged = true
	a.AcknowledgedBy = userID
	a.AcknowledgedAt = &at
	return true, nil
}

// ── JobPartUsageRepository ────────────────────────────────────────────────────

type memUsageRepo struct{ s *memStore }

func (r *memUsageRepo) Create(u *entity.JobPartUsage) error {
	c := *u
	r.s.usages = append(r.s.usages, &c)
	return nil
}

func (r *memUsageRepo) ListByJob(jobID, companyID string) ([]*entity.JobPartUsage, error) {
	var out []*entity.JobPartUsage
	for _, u := range r.s.usages {
		if u.CompanyID == companyID && u.JobID == jobID {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── PurchaseOrderRepository ───────────────────────────────────────────────────

type memPurchaseOrderRepo struct{ s *memStore }

func (r *memPurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	c := *po
	c.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	r.s.orders[po.ID] = &c
	return nil
}

func (r *memPurchaseOrderRepo) GetByID(id, companyID string) (*entity.PurchaseOrder, error) {
	po, ok := r.s.orders[id]
	if !ok || po.CompanyID != companyID {
		return nil, nil
	}
	c := *po
	c.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &c, nil
}

func (r *memPurchaseOrderRepo) GetForUpdate(id, companyID string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id, companyID)
}

func (r *memPurchaseOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for id, po := range r.s.orders {
		if po.CompanyID != companyID {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		c, _ := r.GetByID(id, companyID)
		out = append(out, c)
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) UpdateStatus(id, companyID, status string) (bool, error) {
	po, ok := r.s.orders[id]
	if !ok || po.CompanyID != companyID {
		return false, nil
	}
	po.Status = status
	return true, nil
}

func (r *memPurchaseOrderRepo) AddLineReceived(poID, inventoryItemID string, receivedQty int) error {
	po, ok := r.s.orders[poID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range po.Items {
		if po.Items[i].InventoryItemID == inventoryItemID {
			po.Items[i].ReceivedQuantity += receivedQty
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memPurchaseOrderRepo) MarkReceived(id, companyID string, receivedAt time.Time) error {
	po, ok := r.s.orders[id]
	if !ok || po.CompanyID != companyID {
		return domain.ErrNotFound
	}
	po.Status = entity.PurchaseOrderReceived
	po.ReceivedDate = &receivedAt
	return nil
}

// ── JobRepository ─────────────────────────────────────────────────────────────

type memJobRepo struct{ s *memStore }

func (r *memJobRepo) Create(job *entity.Job) error {
	c := *job
	r.s.jobs[job.ID] = &c
	return nil
}

func (r *memJobRepo) GetByID(id, companyID string) (*entity.Job, error) {
	j, ok := r.s.jobs[id]
	if !ok || j.CompanyID != companyID {
		return nil, nil
	}
	c := *j
	return &c, nil
}

func (r *memJobRepo) ListByCompany(companyID string, filter repository.JobFilter) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range r.s.jobs {
		if j.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		c := *j
		out = append(out, &c)
	}
	return out, nil
}

func (r *memJobRepo) ListByIDs(ids []string, companyID string) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, id := range ids {
		if j, _ := r.GetByID(id, companyID); j != nil {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memJobRepo) ListRecent(companyID string, limit int) ([]*entity.Job, error) {
	return r.ListByCompany(companyID, repository.JobFilter{Limit: limit})
}

func (r *memJobRepo) UpdateStatus(id, companyID, status string, completedDate *time.Time) (bool, error) {
	j, ok := r.s.jobs[id]
	if !ok || j.CompanyID != companyID {
		return false, nil
	}
	j.Status = status
	if completedDate != nil {
		j.CompletedDate = completedDate
	}
	return true, nil
}

func (r *memJobRepo) AddNote(note *entity.JobNote) error {
	c := *note
	r.s.notes = append(r.s.notes, &c)
	return nil
}

func (r *memJobRepo) Delete(id, companyID string) (bool, error) {
	j, ok := r.s.jobs[id]
	if !ok || j.CompanyID != companyID {
		return false, nil
	}
	delete(r.s.jobs, id)
	return true, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner serializa las transacciones con el mutex del store y restaura el
// snapshot si la función devuelve error, emulando Commit/Rollback.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.LowStockAlertRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(&memItemRepo{t.s}, &memMovementRepo{t.s}, &memAlertRepo{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func (t *memTxRunner) RunParts(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.LowStockAlertRepository,
	repository.JobPartUsageRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(&memItemRepo{t.s}, &memMovementRepo{t.s}, &memAlertRepo{t.s}, &memUsageRepo{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func (t *memTxRunner) RunReceiving(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.LowStockAlertRepository,
	repository.PurchaseOrderRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(&memItemRepo{t.s}, &memMovementRepo{t.s}, &memAlertRepo{t.s}, &memPurchaseOrderRepo{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
