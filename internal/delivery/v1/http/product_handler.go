package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

type upsertProductBody struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int64  `json:"stock"`
}

type adjustStockBody struct {
	Delta int64 `json:"delta"`
}

type productResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int64  `json:"stock"`
}

// upsertProduct
//
//	@Summary		Создание или обновление товара
//	@Description	Товар идентифицируется именем; повторный запрос с теми же данными не меняет ничего
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"ID администратора"
//	@Param			X-User-Role	header		string				true	"Роль (admin)"
//	@Param			body		body		upsertProductBody	true	"Данные товара, цена строкой"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (h *ProductHandler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !actor.Admin {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	var body upsertProductBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	if body.Name == "" || body.Category == "" || body.Price == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	priceCents, err := parsePriceToCents(body.Price)
	if err != nil {
		h.logger.Warnf("%d %s: %q", http.StatusBadRequest, e.ErrInvalidPrice.Error(), body.Price)
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.UpsertProduct(r.Context(), usecase.NewUpsertProductReq(body.Name, body.Category, priceCents, body.Stock))
	if err != nil {
		h.logger.Warnf("upsert product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	if res.NoChanges {
		WriteSuccess(w, http.StatusOK, map[string]interface{}{
			"Changed": false,
		})
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"ID": res.Product.ID,
	})
}

// getProducts
//
//	@Summary	Информация о товарах по ID
//	@Tags		products
//	@Produce	json
//	@Param		ids	query		string	true	"ID товаров через запятую"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	400	{object}	ErrorResponse	"Пустой список ID"
//	@Router		/products [get]
func (h *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq(ids))
	if err != nil {
		h.logger.Warnf("get products failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	products := make([]productResponse, 0, len(res.Products))
	for _, product := range res.Products {
		products = append(products, productResponse{
			ID:       product.ID,
			Name:     product.Name,
			Category: product.CategoryName,
			Price:    formatCents(product.Price),
			Stock:    product.Stock,
		})
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"products":  products,
		"not_found": res.NotFoundProducts,
	})
}

// adjustStock
//
//	@Summary	Пополнение остатков товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string			true	"ID администратора"
//	@Param		X-User-Role	header		string			true	"Роль (admin)"
//	@Param		productID	path		int				true	"ID товара"
//	@Param		body		body		adjustStockBody	true	"Прибавка к остатку"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	404			{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{productID}/stock [post]
func (h *ProductHandler) adjustStock(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !actor.Admin {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body adjustStockBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrInvalidJSONBody.Error(), err.Error())
		WriteError(w, e.ErrInvalidJSONBody)
		return
	}

	if err := h.catalogUsecase.AdjustStock(r.Context(), productID, body.Delta); err != nil {
		h.logger.Warnf("adjust stock failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"delta":      body.Delta,
	})
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, e.ErrNoProducts
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, e.ErrStatusBadRequest
		}
		ids = append(ids, id)
	}

	return ids, nil
}
