package domain

import (
	"time"

	"github.com/vitrine-tech/storefront-backend/pkg/e"
)

// OrderStatus — статус жизненного цикла заказа.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// transitions — таблица допустимых переходов статуса.
// delivered и cancelled — терминальные состояния без исходящих рёбер.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseOrderStatus валидирует строковое представление статуса.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", e.ErrUnknownOrderStatus
	}
	return status, nil
}

// CanTransition сообщает, допустим ли переход from -> to.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order описывает шапку заказа
type Order struct {
	ID              int64
	CustomerID      int64
	Status          OrderStatus
	Total           int64 // Сумма хранится в копейках
	ShippingAddress string
	Lines           []OrderLine
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func NewOrder(customerID int64, total int64, shippingAddress string, lines []OrderLine) *Order {
	return &Order{
		CustomerID:      customerID,
		Status:          StatusPending,
		Total:           total,
		ShippingAddress: shippingAddress,
		Lines:           lines,
	}
}

// OrderLine описывает позицию заказа. Позиции создаются один раз вместе с заказом
// и далее не изменяются; отмена заказа возвращает остатки, но не удаляет позиции.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice int64 // Цена на момент покупки, в копейках
	Subtotal  int64
}

// NewOrderLine пересчитывает subtotal из количества и цены, не доверяя входным данным.
func NewOrderLine(productID, quantity, unitPrice int64) OrderLine {
	return OrderLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  quantity * unitPrice,
	}
}

// ComputeTotal возвращает сумму subtotal по позициям.
// Вызывается один раз при создании заказа; исторический total заморожен
// и не пересчитывается при изменении цен на товары.
func ComputeTotal(lines []OrderLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Quantity * line.UnitPrice
	}
	return total
}

// ApplyTransition применяет запрошенный статус, сверяясь с таблицей переходов.
// При недопустимом переходе заказ остаётся без изменений.
func (o *Order) ApplyTransition(next OrderStatus) error {
	if !CanTransition(o.Status, next) {
		return e.NewInvalidTransitionError(string(o.Status), string(next))
	}

	o.Status = next
	return nil
}
