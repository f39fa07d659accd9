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
	"github.com/logitrack/logitrack-api/pkg/logger"
)

// MovementMetrics contadores del procesador de movimientos.
type MovementMetrics interface {
	MovementCommitted(movType string, lines int)
	MovementRejected(movType, reason string)
	// LedgerWritten cuenta cada escritura al ledger producida por un delta;
	// op es "insert" (fila creada implícitamente) o "update".
	LedgerWritten(op string)
}

// NopMetrics descarta todas las mediciones. Útil en tests.
type NopMetrics struct{}

// MovementCommitted no hace nada.
func (NopMetrics) MovementCommitted(string, int) {}

// MovementRejected no hace nada.
func (NopMetrics) MovementRejected(string, string) {}

// LedgerWritten no hace nada.
func (NopMetrics) LedgerWritten(string) {}

// MovementUseCase es el único punto de entrada que convierte una petición de
// movimiento en cambios durables: valida, persiste encabezado+renglones y
// aplica los deltas del ledger dentro de una sola transacción. Cualquier fallo
// revierte todo; nunca queda un movimiento sin sus efectos ni efectos sin su
// movimiento.
type MovementUseCase struct {
	txRunner      TxRunner
	validator     *Validator
	engine        *LedgerEngine
	movementRepo  repository.MovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	userRepo      repository.UserRepository
	recorder      audit.Recorder
	metrics       MovementMetrics
	log           *logger.Logger
}

// NewMovementUseCase construye el procesador.
func NewMovementUseCase(
	txRunner TxRunner,
	validator *Validator,
	engine *LedgerEngine,
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	recorder audit.Recorder,
	metrics MovementMetrics,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		validator:     validator,
		engine:        engine,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		recorder:      recorder,
		metrics:       metrics,
		log:           log,
	}
}

// ledgerDelta un ajuste firmado sobre una bodega concreta.
type ledgerDelta struct {
	warehouse *entity.Warehouse
	delta     int
}

// deltasFor deltas de un renglón según el tipo, en orden de aplicación.
// En TRANSFER el débito del origen va siempre primero: si falla, no queda
// crédito sin contrapartida.
func deltasFor(v *ValidatedMovement, line ValidatedLine) []ledgerDelta {
	switch v.Type {
	case entity.MovementTypeInbound:
		return []ledgerDelta{{v.Dest, line.Quantity}}
	case entity.MovementTypeOutbound:
		return []ledgerDelta{{v.Source, -line.Quantity}}
	case entity.MovementTypeTransfer:
		return []ledgerDelta{{v.Source, -line.Quantity}, {v.Dest, line.Quantity}}
	}
	return nil
}

// Create valida la petición, persiste el movimiento con sus renglones y aplica
// los deltas del ledger, todo dentro de una transacción. Devuelve la
// proyección con nombres resueltos.
func (uc *MovementUseCase) Create(ctx context.Context, req dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	var (
		resp      *dto.MovementResponse
		events    []audit.Event
		ledgerOps []string
	)

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		validated, err := uc.validator.Validate(ctx, repos, req)
		if err != nil {
			return err
		}

		now := time.Now()
		movement := &entity.Movement{
			ID:        uuid.New().String(),
			Date:      now,
			Type:      validated.Type,
			UserID:    validated.User.ID,
			Note:      validated.Note,
			CreatedAt: now,
		}
		if validated.Source != nil {
			movement.SourceWarehouseID = &validated.Source.ID
		}
		if validated.Dest != nil {
			movement.DestWarehouseID = &validated.Dest.ID
		}
		for i, line := range validated.Lines {
			movement.Lines = append(movement.Lines, entity.MovementLine{
				ID:         uuid.New().String(),
				MovementID: movement.ID,
				LineNo:     i + 1,
				ProductID:  line.Product.ID,
				Quantity:   line.Quantity,
			})
		}

		if err := repos.Movements.Create(ctx, movement); err != nil {
			return err
		}
		events = append(events, audit.Event{
			Operation: entity.AuditInsert, Entity: "Movement", EntityID: movement.ID,
			After: movement, UserID: movement.UserID,
		})

		for _, line := range validated.Lines {
			for _, d := range deltasFor(validated, line) {
				mutation, err := uc.engine.ApplyDelta(ctx, repos.Ledger, d.warehouse, line.Product, d.delta)
				if err != nil {
					return err
				}
				op := entity.AuditUpdate
				ledgerOp := "update"
				if mutation.Created {
					op = entity.AuditInsert
					ledgerOp = "insert"
				}
				ledgerOps = append(ledgerOps, ledgerOp)
				events = append(events, audit.Event{
					Operation: op, Entity: "StockLedgerEntry", EntityID: mutation.After.ID,
					Before: mutation.Before, After: mutation.After, UserID: movement.UserID,
				})
			}
		}

		resp = projectMovement(movement, validated)
		return nil
	})
	if err != nil {
		uc.metrics.MovementRejected(req.Type, rejectionReason(err))
		return nil, err
	}

	// La auditoría se emite tras el commit: observa hechos consumados y un
	// fallo del escritor no puede deshacer el movimiento.
	for _, ev := range events {
		uc.recorder.Record(ctx, ev)
	}
	uc.metrics.MovementCommitted(resp.Type, len(resp.Lines))
	for _, op := range ledgerOps {
		uc.metrics.LedgerWritten(op)
	}
	uc.log.Info().
		Str("movement_id", resp.ID).
		Str("type", resp.Type).
		Int("lines", len(resp.Lines)).
		Msg("movimiento registrado")
	return resp, nil
}

// Delete elimina el movimiento del historial. Por diseño NO revierte sus
// efectos en el ledger: es una herramienta de corrección de errores de
// captura, no un deshacer. Los llamadores deben asumir que el stock queda
// exactamente como estaba.
func (uc *MovementUseCase) Delete(ctx context.Context, userID, id string) error {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if movement == nil {
		return domain.NewNotFoundError("Movimiento", id)
	}
	deleted, err := uc.movementRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("Movimiento", id)
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditDelete, Entity: "Movement", EntityID: id,
		Before: movement, UserID: userID,
	})
	uc.log.Warn().Str("movement_id", id).Msg("movimiento eliminado; el inventario NO se revirtió")
	return nil
}

// GetByID devuelve la proyección de un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.NewNotFoundError("Movimiento", id)
	}
	responses, err := uc.toResponses(ctx, []*entity.Movement{movement})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// List movimientos con paginación.
func (uc *MovementUseCase) List(ctx context.Context, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListByType movimientos de un tipo.
func (uc *MovementUseCase) ListByType(ctx context.Context, movType string, limit, offset int) ([]dto.MovementResponse, error) {
	t := entity.MovementType(movType)
	if !t.Valid() {
		return nil, domain.NewValidationError("tipo de movimiento inválido: %q", movType)
	}
	movements, err := uc.movementRepo.ListByType(ctx, t, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListByWarehouse movimientos donde la bodega es origen o destino.
func (uc *MovementUseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// requireWarehouse verifica que la bodega exista antes de consultar por ella.
func (uc *MovementUseCase) requireWarehouse(ctx context.Context, warehouseID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewNotFoundError("Bodega", warehouseID)
	}
	return nil
}

// ListInboundByWarehouse entradas (INBOUND) cuyo destino es la bodega.
func (uc *MovementUseCase) ListInboundByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListInboundByDest(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListOutboundByWarehouse salidas (OUTBOUND) cuyo origen es la bodega.
func (uc *MovementUseCase) ListOutboundByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListOutboundBySource(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListTransfersFromWarehouse traslados que salen de la bodega.
func (uc *MovementUseCase) ListTransfersFromWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListTransfersFrom(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListTransfersToWarehouse traslados que llegan a la bodega.
func (uc *MovementUseCase) ListTransfersToWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.MovementResponse, error) {
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListTransfersTo(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListByUser movimientos registrados por un usuario.
func (uc *MovementUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]dto.MovementResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("Usuario", userID)
	}
	movements, err := uc.movementRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListByDates movimientos en un rango de fechas.
func (uc *MovementUseCase) ListByDates(ctx context.Context, from, to time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.ListByDates(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// ListLatest los últimos n movimientos.
func (uc *MovementUseCase) ListLatest(ctx context.Context, n int) ([]dto.MovementResponse, error) {
	if n <= 0 || n > 50 {
		n = 10
	}
	movements, err := uc.movementRepo.ListLatest(ctx, n)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, movements)
}

// projectMovement construye la respuesta desde las entidades ya resueltas en
// la validación, sin relecturas.
func projectMovement(movement *entity.Movement, validated *ValidatedMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:   movement.ID,
		Date: movement.Date,
		Type: string(movement.Type),
		User: validated.User.FullName,
		Note: movement.Note,
	}
	if validated.Source != nil {
		resp.SourceWarehouse = validated.Source.Name
	}
	if validated.Dest != nil {
		resp.DestWarehouse = validated.Dest.Name
	}
	for i, line := range movement.Lines {
		resp.Lines = append(resp.Lines, dto.MovementLineResponse{
			ID:       line.ID,
			Product:  validated.Lines[i].Product.Name,
			Quantity: line.Quantity,
		})
	}
	return resp
}

// toResponses resuelve nombres de usuario, bodegas y productos para un lote de
// movimientos, con caché por petición. Una referencia borrada después del
// movimiento se muestra con su id crudo.
func (uc *MovementUseCase) toResponses(ctx context.Context, movements []*entity.Movement) ([]dto.MovementResponse, error) {
	userNames := map[string]string{}
	warehouseNames := map[string]string{}
	productNames := map[string]string{}

	userName := func(id string) (string, error) {
		if name, ok := userNames[id]; ok {
			return name, nil
		}
		name := id
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if user != nil {
			name = user.FullName
		}
		userNames[id] = name
		return name, nil
	}
	warehouseName := func(id string) (string, error) {
		if name, ok := warehouseNames[id]; ok {
			return name, nil
		}
		name := id
		warehouse, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if warehouse != nil {
			name = warehouse.Name
		}
		warehouseNames[id] = name
		return name, nil
	}
	productName := func(id string) (string, error) {
		if name, ok := productNames[id]; ok {
			return name, nil
		}
		name := id
		product, err := uc.productRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if product != nil {
			name = product.Name
		}
		productNames[id] = name
		return name, nil
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.MovementResponse{
			ID:   m.ID,
			Date: m.Date,
			Type: string(m.Type),
			Note: m.Note,
		}
		var err error
		if resp.User, err = userName(m.UserID); err != nil {
			return nil, err
		}
		if m.SourceWarehouseID != nil {
			if resp.SourceWarehouse, err = warehouseName(*m.SourceWarehouseID); err != nil {
				return nil, err
			}
		}
		if m.DestWarehouseID != nil {
			if resp.DestWarehouse, err = warehouseName(*m.DestWarehouseID); err != nil {
				return nil, err
			}
		}
		for _, line := range m.Lines {
			name, err := productName(line.ProductID)
			if err != nil {
				return nil, err
			}
			resp.Lines = append(resp.Lines, dto.MovementLineResponse{
				ID:       line.ID,
				Product:  name,
				Quantity: line.Quantity,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

// rejectionReason etiqueta de métrica según la clase de error.
func rejectionReason(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsBusinessRule(err):
		return "business_rule"
	}
	return "internal"
}
