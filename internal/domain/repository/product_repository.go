package repository

import (
	"context"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// ProductFilter filtros de búsqueda de catálogo (paginada).
type ProductFilter struct {
	Category string // coincidencia parcial, sin distinguir acentos ni mayúsculas
	Name     string // coincidencia parcial, sin distinguir acentos ni mayúsculas
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando la entidad no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListStockBelow(ctx context.Context, threshold int) ([]*entity.Product, error)
}
