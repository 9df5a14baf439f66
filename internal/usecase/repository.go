package usecase

import (
	"context"

	"github.com/vitrine-tech/storefront-backend/internal/domain"
)

type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) (*UpsertProductRes, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
	// GetPrice возвращает актуальную цену товара внутри транзакции вызывающего.
	GetPrice(ctx context.Context, productID int64) (int64, error)
	// ReserveStock списывает количество со склада внутри транзакции вызывающего.
	// Возвращает *e.InsufficientStockError, если остатка недостаточно.
	ReserveStock(ctx context.Context, productID, quantity int64) error
	// ReleaseStock возвращает количество на склад внутри транзакции вызывающего.
	ReleaseStock(ctx context.Context, productID, quantity int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type CartRepository interface {
	// AddLine добавляет позицию; повторное добавление того же товара
	// суммирует количество в существующей строке.
	AddLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, customerID, productID, quantity int64) error
	RemoveLine(ctx context.Context, customerID, productID int64) error
	GetCart(ctx context.Context, customerID int64) ([]CartLineInfo, error)
	// ReadCartForUpdate читает корзину вместе с текущей ценой и остатком товара,
	// блокируя строки товаров до конца транзакции.
	ReadCartForUpdate(ctx context.Context, customerID int64) ([]CartSnapshotLine, error)
	Clear(ctx context.Context, customerID int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateLines(ctx context.Context, orderID int64, lines []domain.OrderLine) ([]domain.OrderLine, error)
	// GetByIDForUpdate блокирует строку заказа до конца транзакции,
	// сериализуя конкурентные смены статуса одного заказа.
	GetByIDForUpdate(ctx context.Context, orderID int64) (*domain.Order, error)
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	GetLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}
