package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	Price      int64      `db:"price"`
	Stock      int64      `db:"stock"`
	CategoryID int64      `db:"category_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
	IsActive  bool       `db:"is_active"`
}

// CartLineModel представляет запись таблицы cart_items в PostgreSQL.
type CartLineModel struct {
	ID         int64      `db:"id"`
	CustomerID int64      `db:"customer_id"`
	ProductID  int64      `db:"product_id"`
	Quantity   int64      `db:"quantity"`
	UnitPrice  int64      `db:"unit_price"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
// Позиции заказа хранятся отдельно в order_items.
type OrderModel struct {
	ID              int64      `db:"id"`
	CustomerID      int64      `db:"customer_id"`
	Status          string     `db:"status"`
	Total           int64      `db:"total"`
	ShippingAddress string     `db:"shipping_address"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// OrderLineModel представляет запись таблицы order_items в PostgreSQL.
type OrderLineModel struct {
	ID        int64 `db:"id"`
	OrderID   int64 `db:"order_id"`
	ProductID int64 `db:"product_id"`
	Quantity  int64 `db:"quantity"`
	UnitPrice int64 `db:"unit_price"`
	Subtotal  int64 `db:"subtotal"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
