package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
)

// stubTx satisfies pgx.Tx for the transaction manager; only Commit and
// Rollback are ever reached because repositories are mocked.
type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	lastTx *stubTx
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	f.lastTx = &stubTx{}
	return f.lastTx, nil
}

func (f *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return f.Begin(ctx)
}

// Mock repositories for testing

type mockCartRepo struct {
	snapshots    map[int64][]CartSnapshotLine
	cleared      map[int64]bool
	getCartLines []CartLineInfo
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		snapshots: make(map[int64][]CartSnapshotLine),
		cleared:   make(map[int64]bool),
	}
}

func (m *mockCartRepo) AddLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	return line, nil
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, customerID, productID, quantity int64) error {
	return nil
}

func (m *mockCartRepo) RemoveLine(ctx context.Context, customerID, productID int64) error {
	return nil
}

func (m *mockCartRepo) GetCart(ctx context.Context, customerID int64) ([]CartLineInfo, error) {
	return m.getCartLines, nil
}

func (m *mockCartRepo) ReadCartForUpdate(ctx context.Context, customerID int64) ([]CartSnapshotLine, error) {
	return m.snapshots[customerID], nil
}

func (m *mockCartRepo) Clear(ctx context.Context, customerID int64) error {
	m.cleared[customerID] = true
	m.snapshots[customerID] = nil
	return nil
}

type mockProductRepo struct {
	stock    map[int64]int64
	prices   map[int64]int64
	reserved map[int64]int64
	released map[int64]int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		stock:    make(map[int64]int64),
		prices:   make(map[int64]int64),
		reserved: make(map[int64]int64),
		released: make(map[int64]int64),
	}
}

func (m *mockProductRepo) Upsert(ctx context.Context, product *domain.Product) (*UpsertProductRes, error) {
	return nil, nil
}

func (m *mockProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	return nil, nil
}

func (m *mockProductRepo) GetPrice(ctx context.Context, productID int64) (int64, error) {
	price, ok := m.prices[productID]
	if !ok {
		return 0, e.ErrProductNotFound
	}
	return price, nil
}

func (m *mockProductRepo) ReserveStock(ctx context.Context, productID, quantity int64) error {
	available, ok := m.stock[productID]
	if !ok {
		return e.ErrProductNotFound
	}
	if available < quantity {
		return e.NewInsufficientStockError(productID, quantity, available)
	}
	m.stock[productID] = available - quantity
	m.reserved[productID] += quantity
	return nil
}

func (m *mockProductRepo) ReleaseStock(ctx context.Context, productID, quantity int64) error {
	if _, ok := m.stock[productID]; !ok {
		return e.ErrProductNotFound
	}
	m.stock[productID] += quantity
	m.released[productID] += quantity
	return nil
}

type mockOrderRepo struct {
	nextID int64
	orders map[int64]*domain.Order
	lines  map[int64][]domain.OrderLine
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		nextID: 1,
		orders: make(map[int64]*domain.Order),
		lines:  make(map[int64][]domain.OrderLine),
	}
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	stored := *order
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.nextID++
	m.orders[stored.ID] = &stored
	return &stored, nil
}

func (m *mockOrderRepo) CreateLines(ctx context.Context, orderID int64, lines []domain.OrderLine) ([]domain.OrderLine, error) {
	stored := make([]domain.OrderLine, len(lines))
	copy(stored, lines)
	for i := range stored {
		stored[i].ID = int64(i + 1)
		stored[i].OrderID = orderID
	}
	m.lines[orderID] = stored
	return stored, nil
}

func (m *mockOrderRepo) GetByIDForUpdate(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.GetByIDForUpdate(ctx, orderID)
}

func (m *mockOrderRepo) GetLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	return m.lines[orderID], nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	order.Status = status
	cp := *order
	return &cp, nil
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0)
	for _, order := range m.orders {
		if order.CustomerID == customerID {
			cp := *order
			result = append(result, &cp)
		}
	}
	return result, nil
}

type mockOutboxRepo struct {
	events []*OutboxEvent
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

type orderFixture struct {
	uc      *OrderUseCase
	db      *fakeDB
	cart    *mockCartRepo
	product *mockProductRepo
	order   *mockOrderRepo
	outbox  *mockOutboxRepo
	cache   *mockCacheRepo
}

func newOrderFixture() *orderFixture {
	db := &fakeDB{}
	cart := newMockCartRepo()
	product := newMockProductRepo()
	order := newMockOrderRepo()
	outbox := &mockOutboxRepo{}
	cache := newMockCacheRepo()

	return &orderFixture{
		uc:      NewOrderUC(order, cart, product, outbox, cache, db, noopLogger{}),
		db:      db,
		cart:    cart,
		product: product,
		order:   order,
		outbox:  outbox,
		cache:   cache,
	}
}

func TestCreateOrder_ConvertsCartAndReservesStock(t *testing.T) {
	f := newOrderFixture()
	f.product.stock[1] = 10
	f.product.stock[2] = 3
	f.cart.snapshots[42] = []CartSnapshotLine{
		{ProductID: 1, ProductName: "mug", Quantity: 2, UnitPrice: 599, Stock: 10},
		{ProductID: 2, ProductName: "plate", Quantity: 3, UnitPrice: 1250, Stock: 3},
	}

	order, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(42, "Main street 1"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, int64(2*599+3*1250), order.Total)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, int64(2*599), order.Lines[0].Subtotal)
	assert.Equal(t, int64(3*1250), order.Lines[1].Subtotal)

	assert.Equal(t, int64(8), f.product.stock[1])
	assert.Equal(t, int64(0), f.product.stock[2])
	assert.True(t, f.cart.cleared[42])
	assert.True(t, f.db.lastTx.committed)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(42, "Main street 1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrEmptyCart)

	assert.False(t, f.db.lastTx.committed)
	assert.True(t, f.db.lastTx.rolledBack)
	assert.Empty(t, f.outbox.events)
}

func TestCreateOrder_BlankShippingAddress(t *testing.T) {
	f := newOrderFixture()
	f.cart.snapshots[42] = []CartSnapshotLine{
		{ProductID: 1, Quantity: 1, UnitPrice: 100, Stock: 5},
	}

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(42, "   "))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrMissingFields)
	assert.Nil(t, f.db.lastTx)
}

func TestCreateOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newOrderFixture()
	f.product.stock[1] = 10
	f.product.stock[2] = 1
	f.cart.snapshots[42] = []CartSnapshotLine{
		{ProductID: 1, ProductName: "mug", Quantity: 2, UnitPrice: 599, Stock: 10},
		{ProductID: 2, ProductName: "plate", Quantity: 5, UnitPrice: 1250, Stock: 1},
	}

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(42, "Main street 1"))
	require.Error(t, err)

	var stockErr *e.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(2), stockErr.ProductID)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(1), stockErr.Available)

	// validation happens before any write, so nothing was reserved
	assert.Empty(t, f.product.reserved)
	assert.False(t, f.cart.cleared[42])
	assert.Empty(t, f.outbox.events)
	assert.True(t, f.db.lastTx.rolledBack)
}

func TestCreateOrder_WritesOutboxEvent(t *testing.T) {
	f := newOrderFixture()
	f.product.stock[7] = 4
	f.cart.snapshots[9] = []CartSnapshotLine{
		{ProductID: 7, ProductName: "bowl", Quantity: 4, UnitPrice: 330, Stock: 4},
	}

	order, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(9, "Main street 1"))
	require.NoError(t, err)

	require.Len(t, f.outbox.events, 1)
	event := f.outbox.events[0]
	assert.Equal(t, OrderCreated, event.EventType)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, Pending, event.Status)

	var payload OrderCreatedPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, int64(9), payload.CustomerID)
	assert.Equal(t, int64(4*330), payload.Total)
	require.Len(t, payload.Lines, 1)
	assert.Equal(t, int64(7), payload.Lines[0].ProductID)
}

func seedOrder(f *orderFixture, customerID int64, status domain.OrderStatus, lines []domain.OrderLine) *domain.Order {
	order, _ := f.order.Create(context.Background(), domain.NewOrder(customerID, domain.ComputeTotal(lines), "Main street 1", lines))
	order.Status = status
	f.order.orders[order.ID].Status = status
	stored, _ := f.order.CreateLines(context.Background(), order.ID, lines)
	order.Lines = stored
	return order
}

func TestUpdateOrderStatus_AdminDrivesForwardTransitions(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	order := seedOrder(f, 42, domain.StatusPending, []domain.OrderLine{domain.NewOrderLine(1, 2, 100)})

	for _, next := range []domain.OrderStatus{domain.StatusConfirmed, domain.StatusShipped, domain.StatusDelivered} {
		updated, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, next))
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}
}

func TestUpdateOrderStatus_SkippingAStageIsRejected(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	order := seedOrder(f, 42, domain.StatusPending, []domain.OrderLine{domain.NewOrderLine(1, 2, 100)})

	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusShipped))
	require.Error(t, err)

	var transitionErr *e.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "pending", transitionErr.From)
	assert.Equal(t, "shipped", transitionErr.To)

	// order is untouched
	stored, _ := f.order.GetByID(context.Background(), order.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestUpdateOrderStatus_CancelReleasesReservedStock(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	f.product.stock[1] = 0
	f.product.stock[2] = 5
	order := seedOrder(f, 42, domain.StatusConfirmed, []domain.OrderLine{
		domain.NewOrderLine(1, 3, 100),
		domain.NewOrderLine(2, 1, 250),
	})

	updated, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusCancelled))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	assert.Equal(t, int64(3), f.product.stock[1])
	assert.Equal(t, int64(6), f.product.stock[2])
	assert.Equal(t, int64(3), f.product.released[1])
	assert.Equal(t, int64(1), f.product.released[2])
}

func TestCreateOrder_InvalidatesProductCache(t *testing.T) {
	f := newOrderFixture()
	f.product.stock[1] = 10
	f.product.stock[2] = 3
	f.cache.store[1] = ProductInfo{ID: 1, Name: "mug", Price: 599, Stock: 10}
	f.cache.store[2] = ProductInfo{ID: 2, Name: "plate", Price: 1250, Stock: 3}
	f.cart.snapshots[42] = []CartSnapshotLine{
		{ProductID: 1, ProductName: "mug", Quantity: 2, UnitPrice: 599, Stock: 10},
		{ProductID: 2, ProductName: "plate", Quantity: 3, UnitPrice: 1250, Stock: 3},
	}

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(42, "Main street 1"))
	require.NoError(t, err)

	// reservation changed availability, cached projections must not survive
	assert.ElementsMatch(t, []int64{1, 2}, f.cache.deleted)
	assert.Empty(t, f.cache.store)
}

func TestUpdateOrderStatus_CancelInvalidatesProductCache(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	f.product.stock[1] = 0
	f.cache.store[1] = ProductInfo{ID: 1, Name: "mug", Price: 599, Stock: 0}
	order := seedOrder(f, 42, domain.StatusConfirmed, []domain.OrderLine{domain.NewOrderLine(1, 3, 599)})

	// a forward transition does not touch stock, the cache stays put
	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusShipped))
	require.NoError(t, err)
	assert.Empty(t, f.cache.deleted)

	_, err = f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusCancelled))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, f.cache.deleted)
}

func TestUpdateOrderStatus_DeliveredIsTerminal(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	order := seedOrder(f, 42, domain.StatusDelivered, []domain.OrderLine{domain.NewOrderLine(1, 1, 100)})

	for _, next := range []domain.OrderStatus{domain.StatusCancelled, domain.StatusPending, domain.StatusShipped} {
		_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, next))
		var transitionErr *e.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr), "delivered -> %s must be rejected", next)
	}

	// no stock movement happened
	assert.Empty(t, f.product.released)
}

func TestUpdateOrderStatus_CancelledOrderStaysCancelled(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}
	f.product.stock[1] = 0
	order := seedOrder(f, 42, domain.StatusConfirmed, []domain.OrderLine{domain.NewOrderLine(1, 2, 100)})

	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusCancelled))
	require.NoError(t, err)

	// a second cancellation attempt must not release stock twice
	_, err = f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, admin, domain.StatusCancelled))
	require.Error(t, err)
	assert.Equal(t, int64(2), f.product.released[1])
	assert.Equal(t, int64(2), f.product.stock[1])
}

func TestUpdateOrderStatus_OwnerMayOnlyCancel(t *testing.T) {
	f := newOrderFixture()
	owner := Actor{CustomerID: 42}
	f.product.stock[1] = 0
	order := seedOrder(f, 42, domain.StatusPending, []domain.OrderLine{domain.NewOrderLine(1, 1, 100)})

	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, owner, domain.StatusConfirmed))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	updated, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, owner, domain.StatusCancelled))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
}

func TestUpdateOrderStatus_ForeignOrderLooksAbsent(t *testing.T) {
	f := newOrderFixture()
	stranger := Actor{CustomerID: 7}
	order := seedOrder(f, 42, domain.StatusPending, []domain.OrderLine{domain.NewOrderLine(1, 1, 100)})

	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(order.ID, stranger, domain.StatusCancelled))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestUpdateOrderStatus_MissingOrder(t *testing.T) {
	f := newOrderFixture()
	admin := Actor{CustomerID: 1, Admin: true}

	_, err := f.uc.UpdateOrderStatus(context.Background(), NewUpdateOrderStatusReq(999, admin, domain.StatusConfirmed))
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestGetOrder_VisibilityScoping(t *testing.T) {
	f := newOrderFixture()
	order := seedOrder(f, 42, domain.StatusPending, []domain.OrderLine{domain.NewOrderLine(1, 1, 100)})

	got, err := f.uc.GetOrder(context.Background(), order.ID, Actor{CustomerID: 42})
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, got.Lines, 1)

	_, err = f.uc.GetOrder(context.Background(), order.ID, Actor{CustomerID: 7})
	assert.ErrorIs(t, err, e.ErrOrderNotFound)

	_, err = f.uc.GetOrder(context.Background(), order.ID, Actor{CustomerID: 7, Admin: true})
	assert.NoError(t, err)
}
