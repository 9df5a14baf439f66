package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool     *pgxpool.Pool
	conv     converter.OrderConverter
	lineConv converter.OrderLineConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter, lineConv converter.OrderLineConverter) *OrderRepo {
	return &OrderRepo{
		pool:     pool,
		conv:     conv,
		lineConv: lineConv,
	}
}

// Create вставляет шапку заказа в транзакции вызывающего.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (customer_id, status, total, shipping_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, customer_id, status, total, shipping_address, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query, model.CustomerID, model.Status, model.Total, model.ShippingAddress).
		Scan(
			&model.ID, &model.CustomerID, &model.Status, &model.Total,
			&model.ShippingAddress, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// CreateLines вставляет позиции заказа в транзакции вызывающего.
// Позиции после вставки не редактируются и не удаляются.
func (o *OrderRepo) CreateLines(ctx context.Context, orderID int64, lines []domain.OrderLine) ([]domain.OrderLine, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, product_id, quantity, unit_price, subtotal;
	`

	models := make([]*converter.OrderLineModel, 0, len(lines))
	for _, line := range lines {
		var model converter.OrderLineModel
		if err := tx.QueryRow(ctx, query, orderID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal).
			Scan(
				&model.ID, &model.OrderID, &model.ProductID,
				&model.Quantity, &model.UnitPrice, &model.Subtotal,
			); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	return o.lineConv.ToArrEntity(models), nil
}

// GetByIDForUpdate читает шапку заказа с блокировкой строки (FOR UPDATE),
// сериализуя конкурентные смены статуса одного заказа.
func (o *OrderRepo) GetByIDForUpdate(ctx context.Context, orderID int64) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, customer_id, status, total, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`

	var model converter.OrderModel
	if err := tx.QueryRow(ctx, query, orderID).
		Scan(
			&model.ID, &model.CustomerID, &model.Status, &model.Total,
			&model.ShippingAddress, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}

// GetByID читает шапку заказа без блокировки.
func (o *OrderRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `
		SELECT id, customer_id, status, total, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var model converter.OrderModel
	if err := o.pool.QueryRow(ctx, query, orderID).
		Scan(
			&model.ID, &model.CustomerID, &model.Status, &model.Total,
			&model.ShippingAddress, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}

// GetLines возвращает позиции заказа. Позиции неизменяемы, поэтому читаются пулом.
func (o *OrderRepo) GetLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := o.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.OrderLineModel, 0)
	for rows.Next() {
		var model converter.OrderLineModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID,
			&model.Quantity, &model.UnitPrice, &model.Subtotal,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.lineConv.ToArrEntity(models), nil
}

// UpdateStatus записывает новый статус заказа в транзакции вызывающего.
func (o *OrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, customer_id, status, total, shipping_address, created_at, updated_at;
	`

	var model converter.OrderModel
	if err := tx.QueryRow(ctx, query, orderID, string(status)).
		Scan(
			&model.ID, &model.CustomerID, &model.Status, &model.Total,
			&model.ShippingAddress, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}

// ListByCustomer возвращает заказы покупателя, включая терминальные, от новых к старым.
func (o *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_id, status, total, shipping_address, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := o.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Order, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.CustomerID, &model.Status, &model.Total,
			&model.ShippingAddress, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, o.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
