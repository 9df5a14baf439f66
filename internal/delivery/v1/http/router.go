package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "github.com/vitrine-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/vitrine-tech/storefront-backend/internal/usecase"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(orderUC usecase.OrderUC, cartUC usecase.CartUC, catalogUC usecase.CatalogUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(cartUC, r.logger))
		registerProductRoutes(v1, NewProductHandler(catalogUC, r.logger))
	})
}

func registerOrderRoutes(router chi.Router, handler *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/", handler.createOrder)
		or.Get("/", handler.listOrders)
		or.Get("/{orderID}", handler.getOrder)
		or.Patch("/{orderID}/status", handler.updateOrderStatus)
	})
}

func registerCartRoutes(router chi.Router, handler *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", handler.getCart)
		cr.Route("/items", func(ci chi.Router) {
			ci.Post("/", handler.addItem)
			ci.Patch("/{productID}", handler.updateQuantity)
			ci.Delete("/{productID}", handler.removeItem)
		})
	})
}

func registerProductRoutes(router chi.Router, handler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", handler.upsertProduct)
		pr.Get("/", handler.getProducts)
		pr.Post("/{productID}/stock", handler.adjustStock)
	})
}
