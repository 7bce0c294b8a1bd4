package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo del catálogo.
type CreateArticleRequest struct {
	SKU       string          `json:"sku" validate:"required,min=1,max=50"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	ListPrice decimal.Decimal `json:"list_price"`
}

// UpdateArticleRequest entrada para actualizar un artículo.
type UpdateArticleRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ListPrice *decimal.Decimal `json:"list_price"`
	Active    *bool            `json:"active"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	ListPrice decimal.Decimal `json:"list_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
