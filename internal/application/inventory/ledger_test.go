package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
	"github.com/logitrack/logitrack-api/internal/domain"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aprovisionamiento explícito
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerCreate_AprovisionaYAudita(t *testing.T) {
	f := newFixture(t)

	resp, err := f.ledger.Create(context.Background(), f.user.ID, dto.CreateLedgerEntryRequest{
		WarehouseID: f.norte.ID, ProductID: f.tuercas.ID,
		Stock: 100, MinStock: 5, MaxStock: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Stock)
	assert.Equal(t, 5, resp.MinStock)
	assert.Equal(t, 500, resp.MaxStock)
	assert.Equal(t, 100, f.stockAt(t, f.norte.ID, f.tuercas.ID))

	events := f.recorder.byEntity("StockLedgerEntry")
	require.Len(t, events, 1)
	assert.Equal(t, entity.AuditInsert, events[0].Operation)
	assert.Equal(t, f.user.ID, events[0].UserID)
}

func TestLedgerCreate_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		req     dto.CreateLedgerEntryRequest
		notFund bool
		wantMsg string
	}{
		{
			name:    "bodega inexistente",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: "w-fantasma", ProductID: f.tuercas.ID, MaxStock: 100},
			notFund: true,
			wantMsg: "Bodega no encontrado: w-fantasma",
		},
		{
			name:    "producto inexistente",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: f.norte.ID, ProductID: "p-fantasma", MaxStock: 100},
			notFund: true,
			wantMsg: "Producto no encontrado: p-fantasma",
		},
		{
			name:    "par ya aprovisionado",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: f.central.ID, ProductID: f.tornillos.ID, MaxStock: 100},
			wantMsg: "ya existe inventario para este producto en esta bodega",
		},
		{
			name:    "mínimo mayor al máximo",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: f.norte.ID, ProductID: f.tuercas.ID, Stock: 10, MinStock: 50, MaxStock: 20},
			wantMsg: "el stock mínimo no puede ser mayor al stock máximo",
		},
		{
			name:    "stock negativo",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: f.norte.ID, ProductID: f.tuercas.ID, Stock: -1, MaxStock: 100},
			wantMsg: "el stock no puede ser negativo",
		},
		{
			name:    "stock sobre el máximo",
			req:     dto.CreateLedgerEntryRequest{WarehouseID: f.norte.ID, ProductID: f.tuercas.ID, Stock: 101, MaxStock: 100},
			wantMsg: "el stock excedería el máximo permitido: 100",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Create(ctx, f.user.ID, tc.req)
			require.Error(t, err)
			if tc.notFund {
				assert.True(t, domain.IsNotFound(err))
			} else {
				assert.True(t, domain.IsBusinessRule(err))
			}
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
	assert.False(t, f.hasLedger(f.norte.ID, f.tuercas.ID), "ningún rechazo debe dejar fila creada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización administrativa
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerUpdate_RevalidaCotas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.ledger.Update(ctx, f.user.ID, "l-central-tornillos", dto.UpdateLedgerEntryRequest{
		Stock: 80, MinStock: 20, MaxStock: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 80, resp.Stock)
	assert.Equal(t, 80, f.stockAt(t, f.central.ID, f.tornillos.ID))

	_, err = f.ledger.Update(ctx, f.user.ID, "l-central-tornillos", dto.UpdateLedgerEntryRequest{
		Stock: 80, MinStock: 300, MaxStock: 200,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "el stock mínimo no puede ser mayor al stock máximo")

	_, err = f.ledger.Update(ctx, f.user.ID, "l-fantasma", dto.UpdateLedgerEntryRequest{MaxStock: 10})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.EqualError(t, err, "Inventario no encontrado: l-fantasma")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste directo
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerAdjustStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("positivo suma y negativo resta", func(t *testing.T) {
		resp, err := f.ledger.AdjustStock(ctx, f.user.ID, f.central.ID, f.tornillos.ID, 30)
		require.NoError(t, err)
		assert.Equal(t, 80, resp.Stock)

		resp, err = f.ledger.AdjustStock(ctx, f.user.ID, f.central.ID, f.tornillos.ID, -80)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Stock, "llegar a cero es válido")
	})

	t.Run("no puede quedar negativo", func(t *testing.T) {
		_, err := f.ledger.AdjustStock(ctx, f.user.ID, f.central.ID, f.tornillos.ID, -1)
		require.Error(t, err)

		var bre *domain.BusinessRuleError
		require.ErrorAs(t, err, &bre)
		assert.Equal(t, 0, bre.Available)
		assert.Equal(t, 1, bre.Requested)
		assert.Equal(t, 0, f.stockAt(t, f.central.ID, f.tornillos.ID))
	})

	t.Run("no puede exceder el máximo", func(t *testing.T) {
		_, err := f.ledger.AdjustStock(ctx, f.user.ID, f.central.ID, f.tornillos.ID, 1001)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("exige fila existente", func(t *testing.T) {
		// A diferencia de los movimientos, el ajuste no crea la fila.
		_, err := f.ledger.AdjustStock(ctx, f.user.ID, f.norte.ID, f.tuercas.ID, 10)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
		assert.EqualError(t, err, "Inventario no encontrado: "+f.norte.ID+"/"+f.tuercas.ID)
		assert.False(t, f.hasLedger(f.norte.ID, f.tuercas.ID))
	})
}

// txOnlyWarehouseRepo y txOnlyProductRepo fallan en GetByID fuera de la
// transacción: verifican que el ajuste resuelve bodega y producto con los
// repositorios transaccionales, no con los inyectados al construir el caso
// de uso.
type txOnlyWarehouseRepo struct{ repository.WarehouseRepository }

func (txOnlyWarehouseRepo) GetByID(context.Context, string) (*entity.Warehouse, error) {
	return nil, errors.New("consulta de bodega fuera de la transacción")
}

type txOnlyProductRepo struct{ repository.ProductRepository }

func (txOnlyProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errors.New("consulta de producto fuera de la transacción")
}

func TestLedgerAdjustStock_ResuelveReferenciasEnLaTransaccion(t *testing.T) {
	f := newFixture(t)
	repos := f.store.repos()

	runner := &memTxRunner{s: f.store}
	engine := inventory.NewLedgerEngine(inventory.LedgerDefaults{MinStock: 10, MaxStock: 1000})
	ledger := inventory.NewLedgerUseCase(
		runner, engine, repos.Ledger,
		txOnlyWarehouseRepo{repos.Warehouses}, txOnlyProductRepo{repos.Products},
		f.recorder,
	)

	resp, err := ledger.AdjustStock(context.Background(), f.user.ID, f.central.ID, f.tornillos.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 55, resp.Stock)

	_, err = ledger.AdjustStock(context.Background(), f.user.ID, "w-fantasma", f.tornillos.ID, 5)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.EqualError(t, err, "Bodega no encontrado: w-fantasma")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.ledger.Delete(ctx, f.user.ID, "l-central-tornillos")
	require.NoError(t, err)
	assert.False(t, f.hasLedger(f.central.ID, f.tornillos.ID))

	events := f.recorder.byEntity("StockLedgerEntry")
	require.Len(t, events, 1)
	assert.Equal(t, entity.AuditDelete, events[0].Operation)

	err = f.ledger.Delete(ctx, f.user.ID, "l-central-tornillos")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestLedgerGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.ledger.GetByID(ctx, "l-central-tornillos")
	require.NoError(t, err)
	assert.Equal(t, f.central.ID, resp.WarehouseID)
	assert.Equal(t, f.tornillos.ID, resp.ProductID)
	assert.Equal(t, 50, resp.Stock)

	_, err = f.ledger.GetByID(ctx, "l-fantasma")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.EqualError(t, err, "Inventario no encontrado: l-fantasma")
}

func TestLedgerConsultas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Segunda fila para que las agregaciones tengan algo que sumar.
	_, err := f.ledger.Create(ctx, f.user.ID, dto.CreateLedgerEntryRequest{
		WarehouseID: f.norte.ID, ProductID: f.tornillos.ID,
		Stock: 3, MinStock: 10, MaxStock: 100,
	})
	require.NoError(t, err)

	t.Run("GetByPair", func(t *testing.T) {
		resp, err := f.ledger.GetByPair(ctx, f.central.ID, f.tornillos.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, resp.Stock)

		_, err = f.ledger.GetByPair(ctx, f.norte.ID, f.tuercas.ID)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("ByWarehouse y ByProduct", func(t *testing.T) {
		porBodega, err := f.ledger.ByWarehouse(ctx, f.norte.ID)
		require.NoError(t, err)
		assert.Len(t, porBodega, 1)

		porProducto, err := f.ledger.ByProduct(ctx, f.tornillos.ID)
		require.NoError(t, err)
		assert.Len(t, porProducto, 2)

		_, err = f.ledger.ByWarehouse(ctx, "w-fantasma")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("LowStock", func(t *testing.T) {
		// Norte quedó con 3 < mínimo 10; Central con 50 >= 10.
		bajos, err := f.ledger.LowStock(ctx, "")
		require.NoError(t, err)
		require.Len(t, bajos, 1)
		assert.Equal(t, f.norte.ID, bajos[0].WarehouseID)

		bajos, err = f.ledger.LowStock(ctx, f.central.ID)
		require.NoError(t, err)
		assert.Empty(t, bajos)
	})

	t.Run("TotalStock", func(t *testing.T) {
		total, err := f.ledger.TotalStock(ctx, f.tornillos.ID)
		require.NoError(t, err)
		assert.Equal(t, 53, total.TotalStock, "50 en Central + 3 en Norte")

		total, err = f.ledger.TotalStock(ctx, f.tuercas.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, total.TotalStock, "producto sin inventario suma cero")
	})
}
