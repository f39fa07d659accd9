package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

// LedgerDefaults cotas aplicadas al crear implícitamente una fila de inventario.
type LedgerDefaults struct {
	MinStock int
	MaxStock int
}

// LedgerMutation resultado de aplicar un delta: snapshot previo y posterior
// para auditoría. Before es nil cuando la fila se creó en esta operación.
type LedgerMutation struct {
	Created bool
	Before  *entity.StockLedgerEntry
	After   *entity.StockLedgerEntry
}

// LedgerEngine encapsula el único camino de mutación del stock: obtener (o
// crear) la fila con bloqueo y aplicar un delta con verificación de cotas.
type LedgerEngine struct {
	defaults LedgerDefaults
}

// NewLedgerEngine construye el motor con las cotas por defecto configuradas.
func NewLedgerEngine(defaults LedgerDefaults) *LedgerEngine {
	if defaults.MinStock == 0 && defaults.MaxStock == 0 {
		defaults = LedgerDefaults{MinStock: entity.DefaultMinStock, MaxStock: entity.DefaultMaxStock}
	}
	return &LedgerEngine{defaults: defaults}
}

// ApplyDelta obtiene la fila (bodega, producto) con FOR UPDATE — creándola con
// stock 0 y cotas por defecto si no existe — y aplica el delta con firma:
// positivo suma, negativo resta. Debe invocarse dentro de una transacción.
func (e *LedgerEngine) ApplyDelta(ctx context.Context, ledgerRepo repository.LedgerRepository, warehouse *entity.Warehouse, product *entity.Product, delta int) (*LedgerMutation, error) {
	entry, err := ledgerRepo.GetByPairForUpdate(ctx, warehouse.ID, product.ID)
	if err != nil {
		return nil, err
	}
	created := false
	if entry == nil {
		// Creación implícita: única en el sistema, existe para que un INBOUND
		// pueda establecer presencia de un producto en una bodega nueva.
		// CreateIfAbsent + relectura con lock evita perder la inserción de
		// otra transacción concurrente sobre el mismo par.
		fresh := &entity.StockLedgerEntry{
			ID:          uuid.New().String(),
			WarehouseID: warehouse.ID,
			ProductID:   product.ID,
			Stock:       0,
			MinStock:    e.defaults.MinStock,
			MaxStock:    e.defaults.MaxStock,
			UpdatedAt:   time.Now(),
		}
		if err := ledgerRepo.CreateIfAbsent(ctx, fresh); err != nil {
			return nil, err
		}
		entry, err = ledgerRepo.GetByPairForUpdate(ctx, warehouse.ID, product.ID)
		if err != nil {
			return nil, err
		}
		created = true
	}

	before := *entry
	if err := e.applyToEntry(entry, warehouse.Name, product.Name, delta); err != nil {
		return nil, err
	}
	if err := ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	mutation := &LedgerMutation{Created: created, After: entry}
	if !created {
		mutation.Before = &before
	}
	return mutation, nil
}

// applyToEntry calcula el nuevo stock y verifica las cotas sobre una fila ya
// bloqueada. Modifica entry en memoria; el caller persiste.
func (e *LedgerEngine) applyToEntry(entry *entity.StockLedgerEntry, warehouseName, productName string, delta int) error {
	newStock := entry.Stock + delta
	if newStock < 0 {
		return &domain.BusinessRuleError{
			Message: "el stock no puede quedar negativo de '" + productName + "' en bodega '" + warehouseName + "'",
			Product: productName, Warehouse: warehouseName,
			Available: entry.Stock, Requested: -delta,
		}
	}
	if newStock > entry.MaxStock {
		return domain.NewBusinessRuleError("el stock excedería el máximo permitido (%d) de '%s' en bodega '%s'",
			entry.MaxStock, productName, warehouseName)
	}
	entry.Stock = newStock
	entry.UpdatedAt = time.Now()
	return nil
}

// LedgerUseCase operaciones administrativas y de consulta sobre el ledger.
// Las mutaciones pasan por el mismo LedgerEngine que usa el procesador de
// movimientos; ningún otro componente escribe stock.
type LedgerUseCase struct {
	txRunner      TxRunner
	engine        *LedgerEngine
	ledgerRepo    repository.LedgerRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	recorder      audit.Recorder
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	txRunner TxRunner,
	engine *LedgerEngine,
	ledgerRepo repository.LedgerRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	recorder audit.Recorder,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		engine:        engine,
		ledgerRepo:    ledgerRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		recorder:      recorder,
	}
}

// Create aprovisiona explícitamente inventario de un producto en una bodega.
func (uc *LedgerUseCase) Create(ctx context.Context, userID string, req dto.CreateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewNotFoundError("Bodega", req.WarehouseID)
	}
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("Producto", req.ProductID)
	}
	existing, err := uc.ledgerRepo.GetByPair(ctx, req.WarehouseID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessRuleError("ya existe inventario para este producto en esta bodega")
	}
	if err := checkBounds(req.Stock, req.MinStock, req.MaxStock); err != nil {
		return nil, err
	}

	entry := &entity.StockLedgerEntry{
		ID:          uuid.New().String(),
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		UpdatedAt:   time.Now(),
	}
	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditInsert, Entity: "StockLedgerEntry", EntityID: entry.ID,
		After: entry, UserID: userID,
	})
	return toLedgerResponse(entry), nil
}

// Update actualización administrativa de stock y cotas; re-valida mínimo <= máximo.
func (uc *LedgerUseCase) Update(ctx context.Context, userID, id string, req dto.UpdateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.NewNotFoundError("Inventario", id)
	}
	if err := checkBounds(req.Stock, req.MinStock, req.MaxStock); err != nil {
		return nil, err
	}

	before := *entry
	entry.Stock = req.Stock
	entry.MinStock = req.MinStock
	entry.MaxStock = req.MaxStock
	entry.UpdatedAt = time.Now()
	if err := uc.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditUpdate, Entity: "StockLedgerEntry", EntityID: entry.ID,
		Before: &before, After: entry, UserID: userID,
	})
	return toLedgerResponse(entry), nil
}

// AdjustStock ajuste directo (positivo suma, negativo resta) reusando el motor
// de deltas. A diferencia de los movimientos, exige que la fila ya exista.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, userID, warehouseID, productID string, quantity int) (*dto.LedgerEntryResponse, error) {
	var before, after entity.StockLedgerEntry
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		// Las referencias se resuelven dentro de la transacción para que el
		// ajuste vea un estado consistente con la fila bloqueada.
		warehouse, err := repos.Warehouses.GetByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewNotFoundError("Bodega", warehouseID)
		}
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("Producto", productID)
		}

		entry, err := repos.Ledger.GetByPairForUpdate(ctx, warehouseID, productID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.NewNotFoundError("Inventario", warehouseID+"/"+productID)
		}
		before = *entry
		if err := uc.engine.applyToEntry(entry, warehouse.Name, product.Name, quantity); err != nil {
			return err
		}
		if err := repos.Ledger.Save(ctx, entry); err != nil {
			return err
		}
		after = *entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditUpdate, Entity: "StockLedgerEntry", EntityID: after.ID,
		Before: &before, After: &after, UserID: userID,
	})
	return toLedgerResponse(&after), nil
}

// Delete elimina una fila de inventario. El historial de movimientos no se toca.
func (uc *LedgerUseCase) Delete(ctx context.Context, userID, id string) error {
	entry, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.NewNotFoundError("Inventario", id)
	}
	if _, err := uc.ledgerRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditDelete, Entity: "StockLedgerEntry", EntityID: id,
		Before: entry, UserID: userID,
	})
	return nil
}

// GetByID devuelve una fila por su id administrativo.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.NewNotFoundError("Inventario", id)
	}
	return toLedgerResponse(entry), nil
}

// GetByPair devuelve la fila de un producto en una bodega.
func (uc *LedgerUseCase) GetByPair(ctx context.Context, warehouseID, productID string) (*dto.LedgerEntryResponse, error) {
	entry, err := uc.ledgerRepo.GetByPair(ctx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.NewNotFoundError("Inventario", warehouseID+"/"+productID)
	}
	return toLedgerResponse(entry), nil
}

// List devuelve todas las filas con paginación.
func (uc *LedgerUseCase) List(ctx context.Context, limit, offset int) ([]dto.LedgerEntryResponse, error) {
	entries, err := uc.ledgerRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

// ByWarehouse inventario de una bodega.
func (uc *LedgerUseCase) ByWarehouse(ctx context.Context, warehouseID string) ([]dto.LedgerEntryResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

// ByProduct inventario de un producto en todas las bodegas.
func (uc *LedgerUseCase) ByProduct(ctx context.Context, productID string) ([]dto.LedgerEntryResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

// LowStock filas con stock por debajo del mínimo; warehouseID vacío = todas.
func (uc *LedgerUseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.LedgerEntryResponse, error) {
	if warehouseID != "" {
		if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
			return nil, err
		}
	}
	entries, err := uc.ledgerRepo.ListBelowMinimum(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toLedgerResponses(entries), nil
}

// TotalStock stock total de un producto sumado en todas las bodegas.
func (uc *LedgerUseCase) TotalStock(ctx context.Context, productID string) (*dto.TotalStockResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	total, err := uc.ledgerRepo.TotalStockByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.TotalStockResponse{ProductID: productID, TotalStock: total}, nil
}

func (uc *LedgerUseCase) requireWarehouse(ctx context.Context, id string) error {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewNotFoundError("Bodega", id)
	}
	return nil
}

func (uc *LedgerUseCase) requireProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFoundError("Producto", id)
	}
	return nil
}

// checkBounds valida 0 <= stock <= max y min <= max.
func checkBounds(stock, minStock, maxStock int) error {
	if minStock > maxStock {
		return domain.NewBusinessRuleError("el stock mínimo no puede ser mayor al stock máximo")
	}
	if stock < 0 {
		return domain.NewBusinessRuleError("el stock no puede ser negativo")
	}
	if stock > maxStock {
		return domain.NewBusinessRuleError("el stock excedería el máximo permitido: %d", maxStock)
	}
	return nil
}

func toLedgerResponse(entry *entity.StockLedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:          entry.ID,
		WarehouseID: entry.WarehouseID,
		ProductID:   entry.ProductID,
		Stock:       entry.Stock,
		MinStock:    entry.MinStock,
		MaxStock:    entry.MaxStock,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func toLedgerResponses(entries []*entity.StockLedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toLedgerResponse(e))
	}
	return out
}
