package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse переводит типизированные ошибки в HTTP-статус и сообщение.
// Для ошибок с деталями (нехватка остатков, запрещённый переход) текст строится из полей.
func ToHTTPResponse(err error) (int, string) {
	var stockErr *e.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusConflict, fmt.Sprintf(
			"insufficient stock for product %d: requested %d, available %d",
			stockErr.ProductID, stockErr.Requested, stockErr.Available,
		)
	}

	var transitionErr *e.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusConflict, fmt.Sprintf(
			"invalid status transition: %s -> %s",
			transitionErr.From, transitionErr.To,
		)
	}

	switch {
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusConflict, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCartLineNotFound):
		return http.StatusNotFound, e.ErrCartLineNotFound.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusForbidden, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrInvalidJSONBody):
		return http.StatusBadRequest, e.ErrInvalidJSONBody.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrUnknownOrderStatus):
		return http.StatusBadRequest, e.ErrUnknownOrderStatus.Error()
	case errors.Is(err, e.ErrNoProducts):
		return http.StatusBadRequest, e.ErrNoProducts.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// actorFromRequest восстанавливает личность вызывающего из заголовков,
// проставленных шлюзом аутентификации.
func actorFromRequest(r *http.Request) (usecase.Actor, error) {
	rawID := r.Header.Get("X-User-ID")
	if rawID == "" {
		return usecase.Actor{}, e.ErrUnauthorized
	}

	customerID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || customerID <= 0 {
		return usecase.Actor{}, e.ErrUnauthorized
	}

	return usecase.Actor{
		CustomerID: customerID,
		Admin:      r.Header.Get("X-User-Role") == "admin",
	}, nil
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit (e.g. 10^9 rubles)
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// Enforce max value (e.g. 1 billion rubles = 100_000_000_000 cents)
	maxPrice := decimal.NewFromInt(1_000_000_000).Mul(decimal.NewFromInt(100)) // 1B rub in cents
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision // "price must have at most 2 decimal places"
	}

	// Convert to cents: multiply by 100 and round
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

// formatCents renders int64 cents back to a decimal string for responses.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}
	return id, nil
}

// orderResponse — JSON-представление заказа в ответах API.
type orderResponse struct {
	ID              int64               `json:"id"`
	CustomerID      int64               `json:"customer_id"`
	Status          string              `json:"status"`
	Total           string              `json:"total"`
	TotalCents      int64               `json:"total_cents"`
	ShippingAddress string              `json:"shipping_address"`
	Lines           []orderLineResponse `json:"lines,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

type orderLineResponse struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: formatCents(line.UnitPrice),
			Subtotal:  formatCents(line.Subtotal),
		})
	}

	return orderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		Total:           formatCents(order.Total),
		TotalCents:      order.Total,
		ShippingAddress: order.ShippingAddress,
		Lines:           lines,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
