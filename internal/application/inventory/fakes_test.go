package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
	"github.com/logitrack/logitrack-api/pkg/logger"
	"github.com/logitrack/logitrack-api/pkg/textutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda entidades por valor, indexadas por ID (el ledger por par
// bodega|producto). Los repos fake leen y escriben sin sincronizar; la
// serialización la aporta memTxRunner, que toma el mutex durante cada
// transacción igual que los bloqueos de fila serializan en la BD real.
type memStore struct {
	mu         sync.Mutex
	users      map[string]entity.User
	warehouses map[string]entity.Warehouse
	products   map[string]entity.Product
	ledger     map[string]entity.StockLedgerEntry
	movements  map[string]entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]entity.User),
		warehouses: make(map[string]entity.Warehouse),
		products:   make(map[string]entity.Product),
		ledger:     make(map[string]entity.StockLedgerEntry),
		movements:  make(map[string]entity.Movement),
	}
}

func pairKey(warehouseID, productID string) string {
	return warehouseID + "|" + productID
}

// snapshot copia el estado completo para poder restaurarlo en un rollback.
func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.ledger {
		snap.ledger[k] = v
	}
	for k, v := range s.movements {
		v.Lines = append([]entity.MovementLine(nil), v.Lines...)
		snap.movements[k] = v
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.users = snap.users
	s.warehouses = snap.warehouses
	s.products = snap.products
	s.ledger = snap.ledger
	s.movements = snap.movements
}

func (s *memStore) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Movements:  &memMovementRepo{s: s},
		Ledger:     &memLedgerRepo{s: s},
		Products:   &memProductRepo{s: s},
		Warehouses: &memWarehouseRepo{s: s},
		Users:      &memUserRepo{s: s},
	}
}

// memTxRunner emula la transacción: toma el mutex del store (las "filas"
// quedan bloqueadas para otros Run concurrentes), ejecuta fn sobre repos del
// mismo store y, si fn falla, restaura el snapshot previo (rollback).
type memTxRunner struct {
	s *memStore
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	if err := fn(r.s.repos()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type memWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	r.s.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	r.s.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.s.warehouses, id)
	return nil
}

func (r *memWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) Search(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	for _, p := range r.s.products {
		p := p
		if filter.Category != "" && !strings.Contains(textutil.Fold(p.Category), filter.Category) {
			continue
		}
		if filter.Name != "" && !strings.Contains(textutil.Fold(p.Name), filter.Name) {
			continue
		}
		matched = append(matched, &p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *memProductRepo) ListStockBelow(_ context.Context, threshold int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		p := p
		if p.Stock < threshold {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	m := *movement
	m.Lines = append([]entity.MovementLine(nil), movement.Lines...)
	r.s.movements[m.ID] = m
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if m, ok := r.s.movements[id]; ok {
		m.Lines = append([]entity.MovementLine(nil), m.Lines...)
		return &m, nil
	}
	return nil, nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.s.movements[id]; !ok {
		return false, nil
	}
	delete(r.s.movements, id)
	return true, nil
}

func (r *memMovementRepo) all() []*entity.Movement {
	out := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func page(movements []*entity.Movement, limit, offset int) []*entity.Movement {
	if offset >= len(movements) {
		return nil
	}
	movements = movements[offset:]
	if limit > 0 && limit < len(movements) {
		movements = movements[:limit]
	}
	return movements
}

func (r *memMovementRepo) List(_ context.Context, limit, offset int) ([]*entity.Movement, error) {
	return page(r.all(), limit, offset), nil
}

func (r *memMovementRepo) ListByType(_ context.Context, t entity.MovementType, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.all() {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.all() {
		if (m.SourceWarehouseID != nil && *m.SourceWarehouseID == warehouseID) ||
			(m.DestWarehouseID != nil && *m.DestWarehouseID == warehouseID) {
			out = append(out, m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) ListInboundByDest(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndWarehouse(entity.MovementTypeInbound, nil, &warehouseID, limit, offset), nil
}

func (r *memMovementRepo) ListOutboundBySource(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndWarehouse(entity.MovementTypeOutbound, &warehouseID, nil, limit, offset), nil
}

func (r *memMovementRepo) ListTransfersFrom(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndWarehouse(entity.MovementTypeTransfer, &warehouseID, nil, limit, offset), nil
}

func (r *memMovementRepo) ListTransfersTo(_ context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndWarehouse(entity.MovementTypeTransfer, nil, &warehouseID, limit, offset), nil
}

func (r *memMovementRepo) listByTypeAndWarehouse(t entity.MovementType, sourceID, destID *string, limit, offset int) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range r.all() {
		if m.Type != t {
			continue
		}
		if sourceID != nil && (m.SourceWarehouseID == nil || *m.SourceWarehouseID != *sourceID) {
			continue
		}
		if destID != nil && (m.DestWarehouseID == nil || *m.DestWarehouseID != *destID) {
			continue
		}
		out = append(out, m)
	}
	return page(out, limit, offset)
}

func (r *memMovementRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.all() {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) ListByDates(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.all() {
		if !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) ListLatest(_ context.Context, n int) ([]*entity.Movement, error) {
	return page(r.all(), n, 0), nil
}

type memLedgerRepo struct{ s *memStore }

var _ repository.LedgerRepository = (*memLedgerRepo)(nil)

func (r *memLedgerRepo) Create(_ context.Context, entry *entity.StockLedgerEntry) error {
	key := pairKey(entry.WarehouseID, entry.ProductID)
	if _, ok := r.s.ledger[key]; ok {
		return errDuplicatePair
	}
	r.s.ledger[key] = *entry
	return nil
}

func (r *memLedgerRepo) CreateIfAbsent(_ context.Context, entry *entity.StockLedgerEntry) error {
	key := pairKey(entry.WarehouseID, entry.ProductID)
	if _, ok := r.s.ledger[key]; ok {
		return nil
	}
	r.s.ledger[key] = *entry
	return nil
}

func (r *memLedgerRepo) GetByID(_ context.Context, id string) (*entity.StockLedgerEntry, error) {
	for _, e := range r.s.ledger {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) GetByPair(_ context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error) {
	if e, ok := r.s.ledger[pairKey(warehouseID, productID)]; ok {
		return &e, nil
	}
	return nil, nil
}

// GetByPairForUpdate equivale a GetByPair: el "FOR UPDATE" lo aporta el mutex
// que memTxRunner mantiene durante toda la transacción.
func (r *memLedgerRepo) GetByPairForUpdate(ctx context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error) {
	return r.GetByPair(ctx, warehouseID, productID)
}

func (r *memLedgerRepo) Save(_ context.Context, entry *entity.StockLedgerEntry) error {
	r.s.ledger[pairKey(entry.WarehouseID, entry.ProductID)] = *entry
	return nil
}

func (r *memLedgerRepo) Delete(_ context.Context, id string) (bool, error) {
	for key, e := range r.s.ledger {
		if e.ID == id {
			delete(r.s.ledger, key)
			return true, nil
		}
	}
	return false, nil
}

func (r *memLedgerRepo) List(_ context.Context, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	out := r.all()
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memLedgerRepo) all() []*entity.StockLedgerEntry {
	out := make([]*entity.StockLedgerEntry, 0, len(r.s.ledger))
	for _, e := range r.s.ledger {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		return pairKey(out[i].WarehouseID, out[i].ProductID) < pairKey(out[j].WarehouseID, out[j].ProductID)
	})
	return out
}

func (r *memLedgerRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.all() {
		if e.WarehouseID == warehouseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.all() {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) ListBelowMinimum(_ context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.all() {
		if e.Stock < e.MinStock && (warehouseID == "" || e.WarehouseID == warehouseID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) TotalStockByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			total += e.Stock
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Observadores de test
// ──────────────────────────────────────────────────────────────────────────────

// recordingRecorder captura los eventos de auditoría emitidos.
type recordingRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

var _ audit.Recorder = (*recordingRecorder)(nil)

func (r *recordingRecorder) Record(_ context.Context, ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingRecorder) byEntity(name string) []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []audit.Event
	for _, ev := range r.events {
		if ev.Entity == name {
			out = append(out, ev)
		}
	}
	return out
}

// recordingMetrics cuenta confirmaciones, rechazos y escrituras al ledger.
type recordingMetrics struct {
	mu           sync.Mutex
	committed    map[string]int // tipo -> conteo
	rejected     map[string]int // tipo/razón -> conteo
	ledgerWrites map[string]int // insert|update -> conteo
}

var _ inventory.MovementMetrics = (*recordingMetrics)(nil)

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		committed:    make(map[string]int),
		rejected:     make(map[string]int),
		ledgerWrites: make(map[string]int),
	}
}

func (m *recordingMetrics) MovementCommitted(movType string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed[movType]++
}

func (m *recordingMetrics) MovementRejected(movType, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[movType+"/"+reason]++
}

func (m *recordingMetrics) LedgerWritten(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgerWrites[op]++
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

var errDuplicatePair = &duplicatePairError{}

type duplicatePairError struct{}

func (*duplicatePairError) Error() string { return "par bodega/producto duplicado" }

// fixture arma el motor completo sobre el almacén en memoria con datos
// mínimos: un usuario, dos bodegas y dos productos. Solo "Tornillos 1/2"
// tiene inventario inicial: 50 unidades en Bodega Central.
type fixture struct {
	store    *memStore
	recorder *recordingRecorder
	metrics  *recordingMetrics

	movements *inventory.MovementUseCase
	ledger    *inventory.LedgerUseCase

	user      entity.User
	central   entity.Warehouse
	norte     entity.Warehouse
	tornillos entity.Product
	tuercas   entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	f := &fixture{
		store:    store,
		recorder: &recordingRecorder{},
		metrics:  newRecordingMetrics(),
		user: entity.User{
			ID: "u-1", Username: "ana.torres", Role: entity.RoleEmpleado,
			FullName: "Ana Torres", Email: "ana.torres@logitrack.test",
		},
		central:   entity.Warehouse{ID: "w-central", Name: "Bodega Central", Location: "Bogotá", Capacity: 5000},
		norte:     entity.Warehouse{ID: "w-norte", Name: "Bodega Norte", Location: "Medellín", Capacity: 2000},
		tornillos: entity.Product{ID: "p-tornillos", Name: "Tornillos 1/2", Category: "Ferretería"},
		tuercas:   entity.Product{ID: "p-tuercas", Name: "Tuercas 1/2", Category: "Ferretería"},
	}

	store.users[f.user.ID] = f.user
	store.warehouses[f.central.ID] = f.central
	store.warehouses[f.norte.ID] = f.norte
	store.products[f.tornillos.ID] = f.tornillos
	store.products[f.tuercas.ID] = f.tuercas
	store.ledger[pairKey(f.central.ID, f.tornillos.ID)] = entity.StockLedgerEntry{
		ID: "l-central-tornillos", WarehouseID: f.central.ID, ProductID: f.tornillos.ID,
		Stock: 50, MinStock: 10, MaxStock: 1000, UpdatedAt: time.Now(),
	}

	runner := &memTxRunner{s: store}
	engine := inventory.NewLedgerEngine(inventory.LedgerDefaults{MinStock: 10, MaxStock: 1000})
	repos := store.repos()

	f.movements = inventory.NewMovementUseCase(
		runner, inventory.NewValidator(), engine,
		repos.Movements, repos.Products, repos.Warehouses, repos.Users,
		f.recorder, f.metrics, logger.Nop(),
	)
	f.ledger = inventory.NewLedgerUseCase(
		runner, engine, repos.Ledger, repos.Warehouses, repos.Products, f.recorder,
	)
	return f
}

// stockAt stock actual del par en el almacén.
func (f *fixture) stockAt(t *testing.T, warehouseID, productID string) int {
	t.Helper()
	entry, ok := f.store.ledger[pairKey(warehouseID, productID)]
	require.True(t, ok, "debe existir inventario de %s en %s", productID, warehouseID)
	return entry.Stock
}

func (f *fixture) hasLedger(warehouseID, productID string) bool {
	_, ok := f.store.ledger[pairKey(warehouseID, productID)]
	return ok
}
