package usecase

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

// CartUseCase реализует бизнес-логику корзины покупателя.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// AddItem добавляет товар в корзину, фиксируя цену на момент добавления.
// Повторное добавление того же товара суммирует количество в существующей строке.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddCartItemReq) (*domain.CartLine, error) {
	const op = "CartUseCase.AddItem"

	var err error
	if req.Quantity < 1 {
		return nil, e.Wrap(op, e.ErrInvalidQuantity)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	price, err := c.productRepo.GetPrice(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	line, err := c.cartRepo.AddLine(ctx, domain.NewCartLine(req.CustomerID, req.ProductID, req.Quantity, price))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return line, nil
}

// UpdateQuantity выставляет количество существующей позиции корзины.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, req *UpdateCartItemReq) error {
	const op = "CartUseCase.UpdateQuantity"

	var err error
	if req.Quantity < 1 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = c.cartRepo.UpdateQuantity(ctx, req.CustomerID, req.ProductID, req.Quantity); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// RemoveItem удаляет позицию из корзины.
func (c *CartUseCase) RemoveItem(ctx context.Context, customerID, productID int64) error {
	const op = "CartUseCase.RemoveItem"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = c.cartRepo.RemoveLine(ctx, customerID, productID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetCart возвращает содержимое корзины с именами товаров и промежуточной суммой.
func (c *CartUseCase) GetCart(ctx context.Context, customerID int64) (*GetCartRes, error) {
	const op = "CartUseCase.GetCart"

	lines, err := c.cartRepo.GetCart(ctx, customerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var total int64
	for _, line := range lines {
		total += line.Subtotal
	}

	return NewGetCartRes(lines, total), nil
}
