package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un store compartido con transacciones serializadas por
// mutex y rollback por snapshot, para ejercitar el motor de movimientos sin
// PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

func stockKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type fakeStore struct {
	mu        sync.Mutex
	stock     map[string]*entity.StockRow
	movements []*entity.MovementRecord
	nextID    int64

	products  map[string]*entity.Product
	locations map[string]*entity.Location
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stock:     make(map[string]*entity.StockRow),
		nextID:    1,
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
	}
}

func (s *fakeStore) addProduct(id, sku, name string) {
	s.products[id] = &entity.Product{ID: id, SKU: sku, Name: name, IsActive: true}
}

func (s *fakeStore) addLocation(id, name string) {
	s.locations[id] = &entity.Location{ID: id, Name: name, Type: entity.LocationTypeWarehouse, IsActive: true}
}

func (s *fakeStore) setStock(productID, locationID string, qty, reorderLevel, reorderQty int64) {
	s.stock[stockKey(productID, locationID)] = &entity.StockRow{
		ProductID:       productID,
		LocationID:      locationID,
		Quantity:        qty,
		ReorderLevel:    reorderLevel,
		ReorderQuantity: reorderQty,
		LastUpdated:     time.Now(),
	}
}

func (s *fakeStore) quantity(productID, locationID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.stock[stockKey(productID, locationID)]
	if !ok {
		return 0
	}
	return row.Quantity
}

func (s *fakeStore) movementLog() []*entity.MovementRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.MovementRecord, len(s.movements))
	copy(out, s.movements)
	return out
}

// fakeTxRunner serializa las transacciones con el mutex del store y revierte
// por snapshot si el callback falla, emulando el todo-o-nada de PostgreSQL.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.MovementRepository, repository.StockRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := make(map[string]*entity.StockRow, len(r.store.stock))
	for k, v := range r.store.stock {
		cp := *v
		snapshot[k] = &cp
	}
	movLen := len(r.store.movements)
	prevID := r.store.nextID

	err := fn(&fakeMovementRepo{store: r.store}, &fakeStockRepo{store: r.store})
	if err != nil {
		r.store.stock = snapshot
		r.store.movements = r.store.movements[:movLen]
		r.store.nextID = prevID
	}
	return err
}

// fakeStockRepo opera sobre el store ya bloqueado por la transacción.
type fakeStockRepo struct {
	store *fakeStore
}

func (r *fakeStockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockRow, error) {
	row, ok := r.store.stock[stockKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockRow, error) {
	row, ok := r.store.stock[stockKey(productID, locationID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeStockRepo) Ensure(ctx context.Context, productID, locationID string) error {
	key := stockKey(productID, locationID)
	if _, ok := r.store.stock[key]; !ok {
		r.store.stock[key] = &entity.StockRow{
			ProductID:   productID,
			LocationID:  locationID,
			LastUpdated: time.Now(),
		}
	}
	return nil
}

func (r *fakeStockRepo) Create(ctx context.Context, row *entity.StockRow) error {
	key := stockKey(row.ProductID, row.LocationID)
	if _, ok := r.store.stock[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *row
	cp.LastUpdated = time.Now()
	r.store.stock[key] = &cp
	return nil
}

func (r *fakeStockRepo) UpdateQuantity(ctx context.Context, productID, locationID string, quantity int64) error {
	row, ok := r.store.stock[stockKey(productID, locationID)]
	if !ok {
		return domain.ErrNotFound
	}
	row.Quantity = quantity
	row.LastUpdated = time.Now()
	return nil
}

func (r *fakeStockRepo) UpdateReorder(ctx context.Context, productID, locationID string, reorderLevel, reorderQuantity int64) error {
	row, ok := r.store.stock[stockKey(productID, locationID)]
	if !ok {
		return domain.ErrNotFound
	}
	row.ReorderLevel = reorderLevel
	row.ReorderQuantity = reorderQuantity
	row.LastUpdated = time.Now()
	return nil
}

func (r *fakeStockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*repository.StockView, int64, error) {
	var list []*repository.StockView
	for _, row := range r.store.stock {
		if filter.ProductID != "" && row.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && row.LocationID != filter.LocationID {
			continue
		}
		if filter.LowStockOnly && !row.IsLowStock() {
			continue
		}
		list = append(list, r.toView(row))
	}
	return list, int64(len(list)), nil
}

func (r *fakeStockRepo) ListLowStock(ctx context.Context) ([]*repository.StockView, error) {
	var list []*repository.StockView
	for _, row := range r.store.stock {
		if row.IsLowStock() {
			list = append(list, r.toView(row))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Quantity < list[j].Quantity })
	return list, nil
}

func (r *fakeStockRepo) toView(row *entity.StockRow) *repository.StockView {
	v := &repository.StockView{StockRow: *row}
	if p, ok := r.store.products[row.ProductID]; ok {
		v.ProductName = p.Name
		v.ProductSKU = p.SKU
	}
	if l, ok := r.store.locations[row.LocationID]; ok {
		v.LocationName = l.Name
	}
	return v
}

// fakeMovementRepo asigna IDs monotónicos en orden de commit, como BIGSERIAL.
type fakeMovementRepo struct {
	store *fakeStore
}

func (r *fakeMovementRepo) Append(ctx context.Context, draft *entity.MovementRecord) (*entity.MovementRecord, error) {
	committed := *draft
	committed.ID = r.store.nextID
	committed.OccurredAt = time.Now()
	r.store.nextID++
	r.store.movements = append(r.store.movements, &committed)
	cp := committed
	return &cp, nil
}

func (r *fakeMovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementView, int64, error) {
	var list []*repository.MovementView
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		list = append(list, &repository.MovementView{MovementRecord: *m})
	}
	return list, int64(len(list)), nil
}

// fakeProductRepo y fakeLocationRepo: solo lecturas para validación de referencias.
type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }

func (r *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeLocationRepo struct {
	store *fakeStore
}

func (r *fakeLocationRepo) Create(ctx context.Context, l *entity.Location) error {
	r.store.locations[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	l, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (r *fakeLocationRepo) Update(ctx context.Context, l *entity.Location) error { return nil }

func (r *fakeLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, int64, error) {
	return nil, 0, nil
}

func (r *fakeLocationRepo) Delete(ctx context.Context, id string) error { return nil }
