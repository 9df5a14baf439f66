package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
	"github.com/vitrine-tech/storefront-backend/pkg/logger"
)

// OrderUseCase реализует бизнес-логику жизненного цикла заказов:
// конвертацию корзины в заказ и смену статуса по таблице переходов.
type OrderUseCase struct {
	orderRepo   OrderRepository
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// CreateOrder конвертирует корзину покупателя в заказ в одной транзакции:
// чтение корзины с блокировкой товаров, проверка остатков, создание шапки и позиций,
// списание склада, очистка корзины, запись outbox-события.
// Любая ошибка на любом шаге откатывает транзакцию целиком.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.CreateOrder"

	var err error
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Чтение корзины; строки products блокируются до конца транзакции,
	// чтобы проверка остатка и списание не разъезжались под конкурентными заказами
	snapshot, err := o.cartRepo.ReadCartForUpdate(ctx, req.CustomerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(snapshot) == 0 {
		err = e.ErrEmptyCart
		return nil, e.Wrap(op, err)
	}

	// Проверка остатков по каждой позиции до каких-либо записей
	for _, line := range snapshot {
		if line.Quantity > line.Stock {
			err = e.NewInsufficientStockError(line.ProductID, line.Quantity, line.Stock)
			return nil, e.Wrap(op, err)
		}
	}

	lines := make([]domain.OrderLine, 0, len(snapshot))
	for _, line := range snapshot {
		lines = append(lines, domain.NewOrderLine(line.ProductID, line.Quantity, line.UnitPrice))
	}
	total := domain.ComputeTotal(lines)

	order, err := o.orderRepo.Create(ctx, domain.NewOrder(req.CustomerID, total, req.ShippingAddress, lines))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order.Lines, err = o.orderRepo.CreateLines(ctx, order.ID, lines)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Списание остатков под уже удерживаемыми блокировками строк
	for _, line := range order.Lines {
		if err = o.productRepo.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = o.cartRepo.Clear(ctx, req.CustomerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := newOrderCreatedEvent(order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = o.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша товаров с изменившимися остатками
	o.invalidateProducts(ctx, op, order.Lines)

	o.logger.Infof("order %d created for customer %d, total %d", order.ID, order.CustomerID, order.Total)
	return order, nil
}

// UpdateOrderStatus применяет запрошенный статус к заказу, сверяясь с таблицей переходов.
// Переход в cancelled возвращает остатки по всем позициям в той же транзакции.
func (o *OrderUseCase) UpdateOrderStatus(ctx context.Context, req *UpdateOrderStatusReq) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateOrderStatus"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Блокировка строки заказа сериализует конкурентные смены статуса:
	// таблица переходов всегда оценивается против одного согласованного текущего статуса
	order, err := o.orderRepo.GetByIDForUpdate(ctx, req.OrderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = authorizeMutation(order, req.Actor, req.Status); err != nil {
		return nil, e.Wrap(op, err)
	}

	prev := order.Status
	if err = order.ApplyTransition(req.Status); err != nil {
		return nil, e.Wrap(op, err)
	}

	lines, err := o.orderRepo.GetLines(ctx, req.OrderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Отмена возвращает на склад ровно то, что было списано при создании
	if req.Status == domain.StatusCancelled && prev != domain.StatusCancelled {
		for _, line := range lines {
			if err = o.productRepo.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
				return nil, e.Wrap(op, err)
			}
		}
	}

	updated, err := o.orderRepo.UpdateStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	updated.Lines = lines

	event, err := newOrderStatusChangedEvent(updated.ID, prev, req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = o.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Возврат остатков меняет доступность товаров, кэш устаревает
	if req.Status == domain.StatusCancelled && prev != domain.StatusCancelled {
		o.invalidateProducts(ctx, op, lines)
	}

	o.logger.Infof("order %d status changed: %s -> %s", updated.ID, prev, updated.Status)
	return updated, nil
}

func (o *OrderUseCase) invalidateProducts(ctx context.Context, op string, lines []domain.OrderLine) {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	if err := o.cacheRepo.DeleteProducts(ctx, ids); err != nil {
		o.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}
}

// GetOrder возвращает заказ с позициями, проверяя видимость для актора.
func (o *OrderUseCase) GetOrder(ctx context.Context, orderID int64, actor Actor) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !actor.Admin && order.CustomerID != actor.CustomerID {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	order.Lines, err = o.orderRepo.GetLines(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// ListOrders возвращает историю заказов покупателя, включая терминальные.
func (o *OrderUseCase) ListOrders(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// authorizeMutation проверяет права актора на смену статуса.
// Чужой заказ для не-админа не существует; владелец может только отменить свой заказ,
// остальными переходами управляет админ.
func authorizeMutation(order *domain.Order, actor Actor, requested domain.OrderStatus) error {
	if actor.Admin {
		return nil
	}

	if order.CustomerID != actor.CustomerID {
		return e.ErrOrderNotFound
	}

	if requested != domain.StatusCancelled {
		return e.ErrUnauthorized
	}

	return nil
}

func newOrderCreatedEvent(order *domain.Order) (*OutboxEvent, error) {
	lines := make([]OrderLinePayload, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLinePayload{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total,
		Status:     string(order.Status),
		Lines:      lines,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: OrderCreated,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}

func newOrderStatusChangedEvent(orderID int64, from, to domain.OrderStatus) (*OutboxEvent, error) {
	payload, err := json.Marshal(OrderStatusChangedPayload{
		OrderID: orderID,
		From:    string(from),
		To:      string(to),
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: OrderStatusChanged,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
