package domain

import "time"

// CartLine описывает позицию корзины покупателя.
// На пару (customer_id, product_id) приходится не более одной строки:
// повторное добавление товара суммирует количество, а не создаёт дубликат.
type CartLine struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	Quantity   int64
	UnitPrice  int64 // Цена, зафиксированная в момент добавления, в копейках
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewCartLine(customerID, productID, quantity, unitPrice int64) *CartLine {
	return &CartLine{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}
}
