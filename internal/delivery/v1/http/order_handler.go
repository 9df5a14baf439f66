package http

import (
	"encoding/json"
	"net/http"

	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type createOrderBody struct {
	ShippingAddress string `json:"shipping_address"`
}

type updateOrderStatusBody struct {
	Status string `json:"status"`
}

// createOrder
//
//	@Summary		Оформление заказа из корзины
//	@Description	Атомарно конвертирует корзину покупателя в заказ, резервируя остатки
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string			true	"ID покупателя"
//	@Param			body		body		createOrderBody	true	"Адрес доставки"
//	@Success		201			{object}	orderResponse	"Созданный заказ"
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409			{object}	ErrorResponse	"Пустая корзина или нехватка остатков"
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body createOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	order, err := h.orderUsecase.CreateOrder(r.Context(), usecase.NewCreateOrderReq(actor.CustomerID, body.ShippingAddress))
	if err != nil {
		h.logger.Warnf("create order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(order))
}

// updateOrderStatus
//
//	@Summary		Смена статуса заказа
//	@Description	Переводит заказ в новый статус; отмена возвращает зарезервированные остатки
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string					true	"ID пользователя"
//	@Param			X-User-Role	header		string					false	"Роль (admin)"
//	@Param			orderID		path		int						true	"ID заказа"
//	@Param			body		body		updateOrderStatusBody	true	"Новый статус"
//	@Success		200			{object}	orderResponse			"Заказ после перехода"
//	@Failure		404			{object}	ErrorResponse			"Заказ не найден"
//	@Failure		409			{object}	ErrorResponse			"Недопустимый переход"
//	@Router			/orders/{orderID}/status [patch]
func (h *OrderHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body updateOrderStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	status, err := domain.ParseOrderStatus(body.Status)
	if err != nil {
		h.logger.Warnf("%d %s: %q", http.StatusBadRequest, e.ErrUnknownOrderStatus.Error(), body.Status)
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(r.Context(), usecase.NewUpdateOrderStatusReq(orderID, actor, status))
	if err != nil {
		h.logger.Warnf("update order status failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(order))
}

// getOrder
//
//	@Summary	Получение заказа с позициями
//	@Tags		orders
//	@Produce	json
//	@Param		X-User-ID	header		string			true	"ID пользователя"
//	@Param		orderID		path		int				true	"ID заказа"
//	@Success	200			{object}	orderResponse	"Заказ"
//	@Failure	404			{object}	ErrorResponse	"Заказ не найден"
//	@Router		/orders/{orderID} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.GetOrder(r.Context(), orderID, actor)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(order))
}

// listOrders
//
//	@Summary	История заказов покупателя
//	@Tags		orders
//	@Produce	json
//	@Param		X-User-ID	header		string			true	"ID покупателя"
//	@Success	200			{array}		orderResponse	"Заказы, от новых к старым"
//	@Router		/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	orders, err := h.orderUsecase.ListOrders(r.Context(), actor.CustomerID)
	if err != nil {
		h.logger.Warnf("list orders failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, newOrderResponse(order))
	}

	WriteSuccess(w, http.StatusOK, result)
}
