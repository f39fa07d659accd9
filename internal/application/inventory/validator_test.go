package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
	"github.com/logitrack/logitrack-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reglas estructurales
// ──────────────────────────────────────────────────────────────────────────────

func TestValidator_ReglasEstructurales(t *testing.T) {
	f := newFixture(t)
	v := inventory.NewValidator()

	lineaValida := []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 5}}

	cases := []struct {
		name    string
		req     dto.CreateMovementRequest
		wantMsg string
	}{
		{
			name:    "tipo desconocido",
			req:     dto.CreateMovementRequest{Type: "SALIDA", UserID: f.user.ID, Lines: lineaValida},
			wantMsg: `tipo de movimiento inválido: "SALIDA"`,
		},
		{
			name:    "INBOUND sin destino",
			req:     dto.CreateMovementRequest{Type: "INBOUND", UserID: f.user.ID, Lines: lineaValida},
			wantMsg: "para movimiento INBOUND debe especificar bodega destino",
		},
		{
			name: "INBOUND con origen",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID,
				SourceWarehouseID: f.central.ID, DestWarehouseID: f.norte.ID,
				Lines: lineaValida,
			},
			wantMsg: "para movimiento INBOUND no debe especificar bodega origen",
		},
		{
			name:    "OUTBOUND sin origen",
			req:     dto.CreateMovementRequest{Type: "OUTBOUND", UserID: f.user.ID, Lines: lineaValida},
			wantMsg: "para movimiento OUTBOUND debe especificar bodega origen",
		},
		{
			name: "OUTBOUND con destino",
			req: dto.CreateMovementRequest{
				Type: "OUTBOUND", UserID: f.user.ID,
				SourceWarehouseID: f.central.ID, DestWarehouseID: f.norte.ID,
				Lines: lineaValida,
			},
			wantMsg: "para movimiento OUTBOUND no debe especificar bodega destino",
		},
		{
			name: "TRANSFER sin una de las bodegas",
			req: dto.CreateMovementRequest{
				Type: "TRANSFER", UserID: f.user.ID,
				SourceWarehouseID: f.central.ID,
				Lines:             lineaValida,
			},
			wantMsg: "para movimiento TRANSFER debe especificar bodega origen y destino",
		},
		{
			name: "TRANSFER misma bodega",
			req: dto.CreateMovementRequest{
				Type: "TRANSFER", UserID: f.user.ID,
				SourceWarehouseID: f.central.ID, DestWarehouseID: f.central.ID,
				Lines: lineaValida,
			},
			wantMsg: "la bodega origen y destino no pueden ser la misma",
		},
		{
			name:    "sin renglones",
			req:     dto.CreateMovementRequest{Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID},
			wantMsg: "el movimiento debe tener al menos un renglón",
		},
		{
			name: "renglón sin producto",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{{Quantity: 5}},
			},
			wantMsg: "cada renglón debe indicar un producto",
		},
		{
			name: "cantidad cero",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 0}},
			},
			wantMsg: "la cantidad debe ser mayor o igual a 1",
		},
		{
			name: "cantidad negativa",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: -3}},
			},
			wantMsg: "la cantidad debe ser mayor o igual a 1",
		},
		{
			name: "producto duplicado",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{
					{ProductID: f.tornillos.ID, Quantity: 5},
					{ProductID: f.tornillos.ID, Quantity: 3},
				},
			},
			wantMsg: "producto duplicado en el movimiento: " + f.tornillos.ID,
		},
		{
			name: "usuario vacío",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", DestWarehouseID: f.norte.ID, Lines: lineaValida,
			},
			wantMsg: "el usuario es requerido",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), f.store.repos(), tc.req)
			require.Error(t, err, "la petición debe ser rechazada")
			assert.True(t, domain.IsValidation(err), "debe ser error de validación, fue: %v", err)
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestValidator_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)
	v := inventory.NewValidator()

	cases := []struct {
		name    string
		req     dto.CreateMovementRequest
		wantMsg string
	}{
		{
			name: "usuario inexistente",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: "u-fantasma", DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 5}},
			},
			wantMsg: "Usuario no encontrado: u-fantasma",
		},
		{
			name: "bodega origen inexistente",
			req: dto.CreateMovementRequest{
				Type: "OUTBOUND", UserID: f.user.ID, SourceWarehouseID: "w-fantasma",
				Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 5}},
			},
			wantMsg: "Bodega origen no encontrado: w-fantasma",
		},
		{
			name: "bodega destino inexistente",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: "w-fantasma",
				Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 5}},
			},
			wantMsg: "Bodega destino no encontrado: w-fantasma",
		},
		{
			name: "producto inexistente",
			req: dto.CreateMovementRequest{
				Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
				Lines: []dto.MovementLineRequest{{ProductID: "p-fantasma", Quantity: 5}},
			},
			wantMsg: "Producto no encontrado: p-fantasma",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), f.store.repos(), tc.req)
			require.Error(t, err)
			assert.True(t, domain.IsNotFound(err), "debe ser error not found, fue: %v", err)
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidator_Disponibilidad(t *testing.T) {
	f := newFixture(t)
	v := inventory.NewValidator()

	t.Run("stock insuficiente en origen", func(t *testing.T) {
		_, err := v.Validate(context.Background(), f.store.repos(), dto.CreateMovementRequest{
			Type: "OUTBOUND", UserID: f.user.ID, SourceWarehouseID: f.central.ID,
			Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 60}},
		})
		require.Error(t, err)

		var bre *domain.BusinessRuleError
		require.ErrorAs(t, err, &bre, "debe ser error de regla de negocio")
		assert.Equal(t, f.tornillos.Name, bre.Product)
		assert.Equal(t, f.central.Name, bre.Warehouse)
		assert.Equal(t, 50, bre.Available, "disponible debe reflejar el stock real")
		assert.Equal(t, 60, bre.Requested)
	})

	t.Run("producto sin inventario en origen", func(t *testing.T) {
		_, err := v.Validate(context.Background(), f.store.repos(), dto.CreateMovementRequest{
			Type: "OUTBOUND", UserID: f.user.ID, SourceWarehouseID: f.central.ID,
			Lines: []dto.MovementLineRequest{{ProductID: f.tuercas.ID, Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.EqualError(t, err, "el producto 'Tuercas 1/2' no existe en la bodega 'Bodega Central'")
	})

	t.Run("INBOUND no exige inventario previo", func(t *testing.T) {
		validated, err := v.Validate(context.Background(), f.store.repos(), dto.CreateMovementRequest{
			Type: "INBOUND", UserID: f.user.ID, DestWarehouseID: f.norte.ID,
			Lines: []dto.MovementLineRequest{{ProductID: f.tuercas.ID, Quantity: 5}},
		})
		require.NoError(t, err)
		require.NotNil(t, validated)
		assert.Nil(t, validated.Source, "INBOUND no tiene bodega origen")
		require.NotNil(t, validated.Dest)
		assert.Equal(t, f.norte.ID, validated.Dest.ID)
	})

	t.Run("disponibilidad exacta pasa", func(t *testing.T) {
		validated, err := v.Validate(context.Background(), f.store.repos(), dto.CreateMovementRequest{
			Type: "TRANSFER", UserID: f.user.ID,
			SourceWarehouseID: f.central.ID, DestWarehouseID: f.norte.ID,
			Lines: []dto.MovementLineRequest{{ProductID: f.tornillos.ID, Quantity: 50}},
		})
		require.NoError(t, err, "mover exactamente el stock disponible es válido")
		require.Len(t, validated.Lines, 1)
		assert.Equal(t, 50, validated.Lines[0].Quantity)
	})
}
