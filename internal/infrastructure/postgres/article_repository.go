package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	pool *pgxpool.Pool
}

// NewArticleRepository construye el adaptador de persistencia para artículos.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

const articleColumns = `id, company_id, sku, name, list_price, active, created_at, updated_at`

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		article.ID, article.CompanyID, article.SKU, article.Name,
		article.ListPrice, article.Active, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySKU obtiene un artículo por SKU dentro de la empresa.
func (r *ArticleRepo) GetBySKU(ctx context.Context, companyID, sku string) (*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE company_id = $1 AND sku = $2`
	return r.getOne(ctx, query, companyID, sku)
}

func (r *ArticleRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Article, error) {
	var a entity.Article
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.CompanyID, &a.SKU, &a.Name, &a.ListPrice, &a.Active,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// Update actualiza un artículo existente.
func (r *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	query := `
		UPDATE articles SET name = $2, list_price = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		article.ID, article.Name, article.ListPrice, article.Active, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// ListByCompany lista artículos por empresa con paginación.
func (r *ArticleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.SKU, &a.Name, &a.ListPrice,
			&a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
