package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/tr"
)

// CartRepo реализует репозиторий корзины поверх PostgreSQL.
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartLineConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartLineConverter) *CartRepo {
	return &CartRepo{pool: pool, conv: conv}
}

// AddLine добавляет позицию корзины. Повторное добавление того же товара
// суммирует количество в существующей строке вместо создания дубликата.
func (c *CartRepo) AddLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO cart_items (customer_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()
		RETURNING id, customer_id, product_id, quantity, unit_price, created_at, updated_at;
	`

	var model converter.CartLineModel
	if err := tx.QueryRow(ctx, query, line.CustomerID, line.ProductID, line.Quantity, line.UnitPrice).
		Scan(
			&model.ID, &model.CustomerID, &model.ProductID,
			&model.Quantity, &model.UnitPrice, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// UpdateQuantity выставляет количество существующей позиции.
func (c *CartRepo) UpdateQuantity(ctx context.Context, customerID, productID, quantity int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE customer_id = $1 AND product_id = $2
	`

	res, err := tx.Exec(ctx, query, customerID, productID, quantity)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCartLineNotFound)
	}

	return nil
}

// RemoveLine удаляет позицию корзины.
func (c *CartRepo) RemoveLine(ctx context.Context, customerID, productID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	res, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1 AND product_id = $2`, customerID, productID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCartLineNotFound)
	}

	return nil
}

// GetCart возвращает содержимое корзины с названиями товаров.
// Цена берётся зафиксированная в момент добавления.
func (c *CartRepo) GetCart(ctx context.Context, customerID int64) ([]usecase.CartLineInfo, error) {
	query := `
		SELECT ci.product_id, pr.name, ci.quantity, ci.unit_price, ci.quantity * ci.unit_price AS subtotal
		FROM cart_items ci
		JOIN products pr ON pr.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at
	`

	rows, err := c.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.CartLineInfo, 0)
	for rows.Next() {
		var line usecase.CartLineInfo
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, line)
	}

	return result, nil
}

// ReadCartForUpdate читает корзину вместе с текущей ценой и остатком товара,
// блокируя строки products до конца транзакции (FOR UPDATE OF pr).
// Порядок по product_id даёт детерминированный порядок блокировок.
func (c *CartRepo) ReadCartForUpdate(ctx context.Context, customerID int64) ([]usecase.CartSnapshotLine, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT ci.product_id, pr.name, ci.quantity, ci.unit_price, pr.stock
		FROM cart_items ci
		JOIN products pr ON pr.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.product_id
		FOR UPDATE OF pr
	`

	rows, err := tx.Query(ctx, query, customerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.CartSnapshotLine, 0)
	for rows.Next() {
		var line usecase.CartSnapshotLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPrice, &line.Stock); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, line)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Clear удаляет все позиции корзины покупателя. Вызывается только
// в транзакции успешного создания заказа.
func (c *CartRepo) Clear(ctx context.Context, customerID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
