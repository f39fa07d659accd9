package inventory

import (
	"context"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// ValidatedLine renglón con el producto ya resuelto.
type ValidatedLine struct {
	Product  *entity.Product
	Quantity int
}

// ValidatedMovement resultado de la validación: tipo, entidades resueltas y
// renglones. Source/Dest solo están poblados según lo exige el tipo, de modo
// que el procesador nunca ve combinaciones de bodegas inválidas.
type ValidatedMovement struct {
	Type   entity.MovementType
	User   *entity.User
	Source *entity.Warehouse // OUTBOUND y TRANSFER
	Dest   *entity.Warehouse // INBOUND y TRANSFER
	Lines  []ValidatedLine
	Note   string
}

// Validator valida una petición de movimiento contra las reglas estructurales
// y de disponibilidad. Solo lee; nunca escribe.
type Validator struct{}

// NewValidator construye el validador.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate clasifica y verifica la petición. El orden es deliberado: primero
// las reglas estructurales (sin tocar la BD), luego la resolución de
// referencias y por último la disponibilidad de stock.
func (v *Validator) Validate(ctx context.Context, repos TxRepos, req dto.CreateMovementRequest) (*ValidatedMovement, error) {
	movType := entity.MovementType(req.Type)
	if !movType.Valid() {
		return nil, domain.NewValidationError("tipo de movimiento inválido: %q", req.Type)
	}

	if err := checkWarehouseShape(movType, req); err != nil {
		return nil, err
	}
	if err := checkLinesShape(req.Lines); err != nil {
		return nil, err
	}

	if req.UserID == "" {
		return nil, domain.NewValidationError("el usuario es requerido")
	}
	user, err := repos.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("Usuario", req.UserID)
	}

	validated := &ValidatedMovement{Type: movType, User: user, Note: req.Note}

	if req.SourceWarehouseID != "" {
		validated.Source, err = repos.Warehouses.GetByID(ctx, req.SourceWarehouseID)
		if err != nil {
			return nil, err
		}
		if validated.Source == nil {
			return nil, domain.NewNotFoundError("Bodega origen", req.SourceWarehouseID)
		}
	}
	if req.DestWarehouseID != "" {
		validated.Dest, err = repos.Warehouses.GetByID(ctx, req.DestWarehouseID)
		if err != nil {
			return nil, err
		}
		if validated.Dest == nil {
			return nil, domain.NewNotFoundError("Bodega destino", req.DestWarehouseID)
		}
	}

	for _, line := range req.Lines {
		product, err := repos.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFoundError("Producto", line.ProductID)
		}
		validated.Lines = append(validated.Lines, ValidatedLine{Product: product, Quantity: line.Quantity})
	}

	// OUTBOUND y TRANSFER exigen disponibilidad en la bodega origen. La
	// lectura bloquea la fila (FOR UPDATE) para que la verificación y el
	// débito posterior vean el mismo stock dentro de la transacción.
	if movType == entity.MovementTypeOutbound || movType == entity.MovementTypeTransfer {
		for _, line := range validated.Lines {
			if err := checkAvailability(ctx, repos, validated.Source, line.Product, line.Quantity); err != nil {
				return nil, err
			}
		}
	}

	return validated, nil
}

// checkWarehouseShape reglas estructurales de bodegas por tipo.
func checkWarehouseShape(t entity.MovementType, req dto.CreateMovementRequest) error {
	switch t {
	case entity.MovementTypeInbound:
		if req.DestWarehouseID == "" {
			return domain.NewValidationError("para movimiento INBOUND debe especificar bodega destino")
		}
		if req.SourceWarehouseID != "" {
			return domain.NewValidationError("para movimiento INBOUND no debe especificar bodega origen")
		}
	case entity.MovementTypeOutbound:
		if req.SourceWarehouseID == "" {
			return domain.NewValidationError("para movimiento OUTBOUND debe especificar bodega origen")
		}
		if req.DestWarehouseID != "" {
			return domain.NewValidationError("para movimiento OUTBOUND no debe especificar bodega destino")
		}
	case entity.MovementTypeTransfer:
		if req.SourceWarehouseID == "" || req.DestWarehouseID == "" {
			return domain.NewValidationError("para movimiento TRANSFER debe especificar bodega origen y destino")
		}
		if req.SourceWarehouseID == req.DestWarehouseID {
			return domain.NewValidationError("la bodega origen y destino no pueden ser la misma")
		}
	}
	return nil
}

// checkLinesShape reglas estructurales de renglones: no vacíos, cantidad >= 1,
// producto único dentro del movimiento.
func checkLinesShape(lines []dto.MovementLineRequest) error {
	if len(lines) == 0 {
		return domain.NewValidationError("el movimiento debe tener al menos un renglón")
	}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			return domain.NewValidationError("cada renglón debe indicar un producto")
		}
		if line.Quantity < 1 {
			return domain.NewValidationError("la cantidad debe ser mayor o igual a 1")
		}
		if _, dup := seen[line.ProductID]; dup {
			return domain.NewValidationError("producto duplicado en el movimiento: %s", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// checkAvailability verifica que exista inventario del producto en la bodega
// origen y que alcance para la cantidad solicitada.
func checkAvailability(ctx context.Context, repos TxRepos, source *entity.Warehouse, product *entity.Product, quantity int) error {
	entry, err := repos.Ledger.GetByPairForUpdate(ctx, source.ID, product.ID)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.NewBusinessRuleError("el producto '%s' no existe en la bodega '%s'", product.Name, source.Name)
	}
	if entry.Stock < quantity {
		return domain.NewInsufficientStockError(product.Name, source.Name, entry.Stock, quantity)
	}
	return nil
}
