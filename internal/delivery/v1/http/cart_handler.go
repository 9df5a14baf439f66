package http

import (
	"encoding/json"
	"net/http"

	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type addCartItemBody struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type updateCartItemBody struct {
	Quantity int64 `json:"quantity"`
}

type cartLineResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

// addItem
//
//	@Summary		Добавление товара в корзину
//	@Description	Повторное добавление того же товара суммирует количество
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string			true	"ID покупателя"
//	@Param			body		body		addCartItemBody	true	"Товар и количество"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body addCartItemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	line, err := h.cartUsecase.AddItem(r.Context(), usecase.NewAddCartItemReq(actor.CustomerID, body.ProductID, body.Quantity))
	if err != nil {
		h.logger.Warnf("add cart item failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	})
}

// updateQuantity
//
//	@Summary	Изменение количества товара в корзине
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string				true	"ID покупателя"
//	@Param		productID	path		int					true	"ID товара"
//	@Param		body		body		updateCartItemBody	true	"Новое количество"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	404			{object}	ErrorResponse	"Строка корзины не найдена"
//	@Router		/cart/items/{productID} [patch]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body updateCartItemBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	if err := h.cartUsecase.UpdateQuantity(r.Context(), usecase.NewUpdateCartItemReq(actor.CustomerID, productID, body.Quantity)); err != nil {
		h.logger.Warnf("update cart item failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"quantity":   body.Quantity,
	})
}

// removeItem
//
//	@Summary	Удаление товара из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"ID покупателя"
//	@Param		productID	path	int		true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse	"Строка корзины не найдена"
//	@Router		/cart/items/{productID} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.cartUsecase.RemoveItem(r.Context(), actor.CustomerID, productID); err != nil {
		h.logger.Warnf("remove cart item failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getCart
//
//	@Summary	Содержимое корзины с промежуточными суммами
//	@Tags		cart
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID покупателя"
//	@Success	200			{object}	cartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.GetCart(r.Context(), actor.CustomerID)
	if err != nil {
		h.logger.Warnf("get cart failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, cartLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   formatCents(line.UnitPrice),
			Subtotal:    formatCents(line.Subtotal),
		})
	}

	WriteSuccess(w, http.StatusOK, cartResponse{
		Lines: lines,
		Total: formatCents(cart.Total),
	})
}
