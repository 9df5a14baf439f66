package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID         int64
	Name       string
	Price      int64 // Цена хранится в копейках
	Stock      int64 // Остаток на складе, не бывает отрицательным
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	IsArchived bool
}

func NewProduct(name string, price int64, stock int64, categoryID int64) *Product {
	return &Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: categoryID,
	}
}
