package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para el catálogo de
// artículos (colaborador externo; el motor solo necesita identidad y precio).
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetBySKU(ctx context.Context, companyID, sku string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Article, error)
}
