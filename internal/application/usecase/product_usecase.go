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
	"github.com/logitrack/logitrack-api/pkg/textutil"
)

// ProductUseCase CRUD y búsqueda del catálogo de productos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	recorder audit.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder audit.Recorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, recorder: recorder}
}

// Create crea un producto; el nombre es único.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, req dto.ProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("el nombre del producto es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessRuleError("ya existe un producto con nombre: %s", req.Name)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Stock:     req.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditInsert, Entity: "Product", EntityID: product.ID,
		After: product, UserID: userID,
	})
	return toProductResponse(product), nil
}

// Update actualiza un producto; valida que el nombre nuevo no esté en uso.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, req dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("Producto", id)
	}
	if req.Name != product.Name {
		inUse, err := uc.repo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if inUse != nil {
			return nil, domain.NewBusinessRuleError("nombre ya en uso")
		}
	}
	before := *product
	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.Stock = req.Stock
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditUpdate, Entity: "Product", EntityID: product.ID,
		Before: &before, After: product, UserID: userID,
	})
	return toProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFoundError("Producto", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Event{
		Operation: entity.AuditDelete, Entity: "Product", EntityID: id,
		Before: product, UserID: userID,
	})
	return nil
}

// GetByID devuelve un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("Producto", id)
	}
	return toProductResponse(product), nil
}

// Search búsqueda paginada por categoría y nombre, sin distinguir mayúsculas
// ni acentos.
func (uc *ProductUseCase) Search(ctx context.Context, req dto.ProductSearchRequest) (*dto.ProductPageResponse, error) {
	req.DefaultPage()
	filter := repository.ProductFilter{
		Category: textutil.Fold(req.Category),
		Name:     textutil.Fold(req.Name),
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	products, total, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := &dto.ProductPageResponse{
		Items:  make([]dto.ProductResponse, 0, len(products)),
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	for _, p := range products {
		page.Items = append(page.Items, *toProductResponse(p))
	}
	return page, nil
}

// LowStock productos con stock de referencia por debajo del umbral.
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold < 0 {
		return nil, domain.NewBusinessRuleError("el parámetro 'threshold' debe ser mayor o igual a 0")
	}
	products, err := uc.repo.ListStockBelow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
