package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL,
// включая складские операции резервирования и возврата остатков.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет товар по уникальному имени.
// Запись обновляется только при изменении цены, остатка или категории.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*usecase.UpsertProductRes, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// VALUES ($1, $2, $3, $4) name, price, stock, category_id
	query := `
		WITH upsert AS (
		INSERT INTO products (name, price, stock, category_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			category_id = EXCLUDED.category_id,
			updated_at = NOW()
		WHERE
			products.price IS DISTINCT FROM EXCLUDED.price OR
			products.stock IS DISTINCT FROM EXCLUDED.stock OR
			products.category_id IS DISTINCT FROM EXCLUDED.category_id
		RETURNING
			id, name, price, stock, category_id, created_at, updated_at, is_archived
		)
		SELECT
			id, name, price, stock, category_id, created_at, updated_at, is_archived,
			false AS no_changes
		FROM upsert

		UNION ALL

		SELECT
			id, name, price, stock, category_id, created_at, updated_at, is_archived,
			true AS no_changes
		FROM products
		WHERE name = $1
		  AND NOT EXISTS (SELECT 1 FROM upsert);
	`

	var model converter.ProductModel
	var noChanges bool
	err = tx.QueryRow(ctx, query, product.Name, product.Price, product.Stock, product.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Price, &model.Stock, &model.CategoryID,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived, &noChanges,
		)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUpsertProductRes(p.conv.ToEntity(&model), noChanges), nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам, включая название категории.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, cat.name, pr.price, pr.stock
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(&product.ID, &product.Name, &product.CategoryName, &product.Price, &product.Stock); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	return result, nil
}

// GetPrice возвращает актуальную цену товара в транзакции вызывающего.
func (p *ProductRepo) GetPrice(ctx context.Context, productID int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT price FROM products WHERE id = $1 AND NOT is_archived`

	var price int64
	if err := tx.QueryRow(ctx, query, productID).Scan(&price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return price, nil
}

// ReserveStock списывает quantity единиц со склада условным UPDATE:
// проверка остатка и списание выполняются одним оператором под блокировкой строки,
// поэтому два конкурентных заказа не могут пройти проверку по одной и той же единице товара.
func (p *ProductRepo) ReserveStock(ctx context.Context, productID, quantity int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	res, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		var available int64
		if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&available); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
			}
			return e.Wrap(whereami.WhereAmI(), err)
		}

		return e.Wrap(whereami.WhereAmI(), e.NewInsufficientStockError(productID, quantity, available))
	}

	return nil
}

// ReleaseStock возвращает quantity единиц на склад.
// Возврат зеркалит ранее успешное списание и по построению не уводит остаток в минус.
func (p *ProductRepo) ReleaseStock(ctx context.Context, productID, quantity int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
	`

	res, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}
