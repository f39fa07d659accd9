package usecase

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

// WarehouseUseCase CRUD de bodegas.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	recorder audit.Recorder
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, recorder audit.Recorder) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, recorder: recorder}
}

// Create crea una bodega; el nombre es único.
func (uc *WarehouseUseCase) Create(ctx context.Context, userID string, req dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("el nombre de la bodega es requerido")
	}
	if req.Capacity < 0 {
		return nil, domain.NewValidationError("la capacidad no puede ser negativa")
	}
	existing, err := uc.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessRuleError("ya existe una bodega con nombre: %s", req.Name)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Manager:   req.Manager,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditInsert, Entity: "Warehouse", EntityID: warehouse.ID,
		After: warehouse, UserID: userID,
	})
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega; valida que el nombre nuevo no esté en uso.
func (uc *WarehouseUseCase) Update(ctx context.Context, userID, id string, req dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewNotFoundError("Bodega", id)
	}
	if req.Capacity < 0 {
		return nil, domain.NewValidationError("la capacidad no puede ser negativa")
	}
	if req.Name != warehouse.Name {
		inUse, err := uc.repo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if inUse != nil {
			return nil, domain.NewBusinessRuleError("nombre ya en uso")
		}
	}
	before := *warehouse
	warehouse.Name = req.Name
	warehouse.Location = req.Location
	warehouse.Capacity = req.Capacity
	warehouse.Manager = req.Manager
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditUpdate, Entity: "Warehouse", EntityID: warehouse.ID,
		Before: &before, After: warehouse, UserID: userID,
	})
	return toWarehouseResponse(warehouse), nil
}

// Delete elimina una bodega.
func (uc *WarehouseUseCase) Delete(ctx context.Context, userID, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.NewNotFoundError("Bodega", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditDelete, Entity: "Warehouse", EntityID: id,
		Before: warehouse, UserID: userID,
	})
	return nil
}

// GetByID devuelve una bodega.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewNotFoundError("Bodega", id)
	}
	return toWarehouseResponse(warehouse), nil
}

// List devuelve todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	warehouses, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, *toWarehouseResponse(w))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		Manager:   w.Manager,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
