package usecase

import (
	"context"

	"github.com/vitrine-tech/storefront-backend/internal/domain"
)

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, req *UpdateOrderStatusReq) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64, actor Actor) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID int64) ([]*domain.Order, error)
}

type CartUC interface {
	AddItem(ctx context.Context, req *AddCartItemReq) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, req *UpdateCartItemReq) error
	RemoveItem(ctx context.Context, customerID, productID int64) error
	GetCart(ctx context.Context, customerID int64) (*GetCartRes, error)
}

type CatalogUC interface {
	UpsertProduct(ctx context.Context, req *UpsertProductReq) (*UpsertProductRes, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	AdjustStock(ctx context.Context, productID, delta int64) error
}
