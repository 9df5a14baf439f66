package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Бизнес-ошибки ядра заказов
	ErrEmptyCart        = fmt.Errorf("cart is empty")
	ErrOrderNotFound    = fmt.Errorf("order not found")
	ErrUnauthorized     = fmt.Errorf("actor is not allowed to modify this order")
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCartLineNotFound = fmt.Errorf("cart line not found")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrInvalidJSONBody      = fmt.Errorf("invalid json body")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidQuantity      = fmt.Errorf("quantity must be at least 1")
	ErrUnknownOrderStatus   = fmt.Errorf("unknown order status")
	ErrNoProducts           = fmt.Errorf("no products requested")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// InsufficientStockError возникает при попытке зарезервировать больше товара, чем есть на складе.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func NewInsufficientStockError(productID, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

// InvalidTransitionError возникает при недопустимом переходе статуса заказа.
// From и To — строки, чтобы pkg/e не зависел от internal/domain.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
