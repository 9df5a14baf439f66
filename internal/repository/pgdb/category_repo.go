package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/tr"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{
		pool: pool,
		conv: conv,
	}
}

// Create создаёт категорию либо возвращает существующую по имени.
// DO UPDATE вместо DO NOTHING, чтобы RETURNING отдавал строку и при конфликте.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(category)
	query := `
		INSERT INTO categories (name, is_active)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, is_active, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query, model.Name, model.IsActive).
		Scan(&model.ID, &model.Name, &model.IsActive, &model.CreatedAt, &model.UpdatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}
