//go:generate goverter gen github.com/vitrine-tech/storefront-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// CartLineConverter преобразует сущности CartLine между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CartLineConverter interface {
	ToModel(entity *domain.CartLine) *CartLineModel
	ToEntity(model *CartLineModel) *domain.CartLine
}

// OrderConverter преобразует сущности Order между domain и моделью PostgreSQL.
// Позиции заказа (Lines) моделью не переносятся и подгружаются репозиторием отдельно.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	// goverter:ignore Lines
	ToEntity(model *OrderModel) *domain.Order
}

// OrderLineConverter преобразует сущности OrderLine между domain и моделью PostgreSQL.
// goverter:converter
type OrderLineConverter interface {
	ToModel(entity *domain.OrderLine) *OrderLineModel
	ToEntity(model *OrderLineModel) *domain.OrderLine
	ToArrEntity(models []*OrderLineModel) []domain.OrderLine
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOrderStatus(s string) domain.OrderStatus {
	return domain.OrderStatus(s)
}

func ConvertOutboxStatus(s string) usecase.OutboxStatus {
	return usecase.OutboxStatus(s)
}

func ConvertOutboxEventType(t string) usecase.OutboxEventType {
	return usecase.OutboxEventType(t)
}
