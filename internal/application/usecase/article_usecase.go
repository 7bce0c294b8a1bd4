package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ArticleUseCase CRUD mínimo del catálogo de artículos (el catálogo completo
// es un colaborador externo; aquí solo identidad, precio de lista y estado).
type ArticleUseCase struct {
	repo repository.ArticleRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo}
}

// Create crea un artículo. SKU único por empresa.
func (uc *ArticleUseCase) Create(ctx context.Context, companyID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	article := &entity.Article{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       in.SKU,
		Name:      in.Name,
		ListPrice: in.ListPrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo de la empresa por ID.
func (uc *ArticleUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// Update actualiza nombre, precio de lista o estado.
func (uc *ArticleUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		article.Name = *in.Name
	}
	if in.ListPrice != nil {
		article.ListPrice = *in.ListPrice
	}
	if in.Active != nil {
		article.Active = *in.Active
	}
	article.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List lista artículos por empresa con paginación.
func (uc *ArticleUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ArticleListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		SKU:       a.SKU,
		Name:      a.Name,
		ListPrice: a.ListPrice,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
