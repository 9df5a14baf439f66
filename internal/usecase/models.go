package usecase

import (
	"time"

	"github.com/vitrine-tech/storefront-backend/internal/domain"
)

// ORDER USECASE

// Actor — проверенная внешним слоем аутентификации личность, от имени которой выполняется команда.
type Actor struct {
	CustomerID int64
	Admin      bool
}

// CreateOrderReq — запрос на конвертацию корзины покупателя в заказ.
type CreateOrderReq struct {
	CustomerID      int64
	ShippingAddress string
}

// UpdateOrderStatusReq — запрос на смену статуса заказа.
type UpdateOrderStatusReq struct {
	OrderID int64
	Actor   Actor
	Status  domain.OrderStatus
}

// CartSnapshotLine — строка корзины, прочитанная вместе с текущим состоянием товара
// под блокировкой строки products. Вход воркфлоу создания заказа.
type CartSnapshotLine struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   int64
	Stock       int64
}

// CART USECASE

type AddCartItemReq struct {
	CustomerID int64
	ProductID  int64
	Quantity   int64
}

type UpdateCartItemReq struct {
	CustomerID int64
	ProductID  int64
	Quantity   int64
}

// CartLineInfo — DTO строки корзины для внешнего использования.
type CartLineInfo struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   int64
	Subtotal    int64
}

type GetCartRes struct {
	Lines []CartLineInfo
	Total int64
}

// CATALOG USECASE

// UpsertProductReq — запрос на идемпотентное создание или обновление товара.
type UpsertProductReq struct {
	Name         string
	CategoryName string
	Price        int64
	Stock        int64
}

type UpsertProductRes struct {
	Product   *domain.Product
	NoChanges bool
}

// GetProductsReq запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID           int64
	Name         string
	CategoryName string
	Price        int64
	Stock        int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreated       OutboxEventType = "order.created"
	OrderStatusChanged OutboxEventType = "order.status_changed"
)

// OutboxEvent — событие заказа, записанное в одной транзакции с изменением данных
// и публикуемое в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderCreatedPayload — JSON-представление события order.created.
type OrderCreatedPayload struct {
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id"`
	Total      int64              `json:"total"`
	Status     string             `json:"status"`
	Lines      []OrderLinePayload `json:"lines"`
}

type OrderLinePayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

// OrderStatusChangedPayload — JSON-представление события order.status_changed.
type OrderStatusChangedPayload struct {
	OrderID int64  `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewCreateOrderReq(customerID int64, shippingAddress string) *CreateOrderReq {
	return &CreateOrderReq{
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
	}
}

func NewUpdateOrderStatusReq(orderID int64, actor Actor, status domain.OrderStatus) *UpdateOrderStatusReq {
	return &UpdateOrderStatusReq{
		OrderID: orderID,
		Actor:   actor,
		Status:  status,
	}
}

func NewAddCartItemReq(customerID, productID, quantity int64) *AddCartItemReq {
	return &AddCartItemReq{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}
}

func NewUpdateCartItemReq(customerID, productID, quantity int64) *UpdateCartItemReq {
	return &UpdateCartItemReq{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}
}

func NewGetCartRes(lines []CartLineInfo, total int64) *GetCartRes {
	return &GetCartRes{
		Lines: lines,
		Total: total,
	}
}

func NewUpsertProductReq(name, category string, price, stock int64) *UpsertProductReq {
	return &UpsertProductReq{
		Name:         name,
		CategoryName: category,
		Price:        price,
		Stock:        stock,
	}
}

func NewUpsertProductRes(product *domain.Product, noChanges bool) *UpsertProductRes {
	return &UpsertProductRes{
		Product:   product,
		NoChanges: noChanges,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name string, category string, price, stock int64) ProductInfo {
	return ProductInfo{
		ID:           id,
		Name:         name,
		CategoryName: category,
		Price:        price,
		Stock:        stock,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}
