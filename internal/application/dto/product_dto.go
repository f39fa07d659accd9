package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest body de creación/actualización de producto.
type ProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductSearchRequest filtros de búsqueda paginada del catálogo.
type ProductSearchRequest struct {
	Category string `query:"category"`
	Name     string `query:"name"`
	PageRequest
}

// ProductPageResponse página de resultados de búsqueda.
type ProductPageResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
