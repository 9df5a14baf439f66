package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine-tech/storefront-backend/internal/domain"
	"github.com/vitrine-tech/storefront-backend/pkg/e"
)

type mockCategoryRepo struct {
	nextID  int64
	created map[string]*domain.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{created: make(map[string]*domain.Category)}
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	// idempotent: the same name always resolves to the same row
	if existing, ok := m.created[category.Name]; ok {
		return existing, nil
	}
	m.nextID++
	stored := &domain.Category{ID: m.nextID, Name: category.Name, IsActive: true}
	m.created[category.Name] = stored
	return stored, nil
}

type mockCatalogRepo struct {
	nextID   int64
	infos    map[int64]ProductInfo
	upserted []*domain.Product
	released map[int64]int64
	queried  [][]int64
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		infos:    make(map[int64]ProductInfo),
		released: make(map[int64]int64),
	}
}

func (m *mockCatalogRepo) Upsert(ctx context.Context, product *domain.Product) (*UpsertProductRes, error) {
	m.nextID++
	product.ID = m.nextID
	m.upserted = append(m.upserted, product)
	return &UpsertProductRes{Product: product}, nil
}

func (m *mockCatalogRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	m.queried = append(m.queried, ids)
	found := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := m.infos[id]; ok {
			found = append(found, info)
		}
	}
	return found, nil
}

func (m *mockCatalogRepo) GetPrice(ctx context.Context, productID int64) (int64, error) {
	info, ok := m.infos[productID]
	if !ok {
		return 0, e.ErrProductNotFound
	}
	return info.Price, nil
}

func (m *mockCatalogRepo) ReserveStock(ctx context.Context, productID, quantity int64) error {
	return nil
}

func (m *mockCatalogRepo) ReleaseStock(ctx context.Context, productID, quantity int64) error {
	if _, ok := m.infos[productID]; !ok {
		return e.ErrProductNotFound
	}
	m.released[productID] += quantity
	return nil
}

type mockCacheRepo struct {
	mu      sync.Mutex
	store   map[int64]ProductInfo
	deleted []int64
	sets    int
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{store: make(map[int64]ProductInfo)}
}

func (m *mockCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hits := make(map[int64]ProductInfo)
	for _, id := range ids {
		if info, ok := m.store[id]; ok {
			hits[id] = info
		}
	}
	return hits, nil
}

func (m *mockCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, info := range products {
		m.store[info.ID] = info
	}
	m.sets++
	return nil
}

func (m *mockCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.store, id)
		m.deleted = append(m.deleted, id)
	}
	return nil
}

func (m *mockCacheRepo) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

type catalogFixture struct {
	uc       *CatalogUseCase
	product  *mockCatalogRepo
	category *mockCategoryRepo
	cache    *mockCacheRepo
	db       *fakeDB
}

func newCatalogFixture() *catalogFixture {
	product := newMockCatalogRepo()
	category := newMockCategoryRepo()
	cache := newMockCacheRepo()
	db := &fakeDB{}
	return &catalogFixture{
		uc:       NewCatalogUC(product, category, cache, db, noopLogger{}),
		product:  product,
		category: category,
		cache:    cache,
		db:       db,
	}
}

func TestUpsertProduct_CreatesCategoryAndProduct(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	res, err := f.uc.UpsertProduct(ctx, NewUpsertProductReq("Teapot", "Kitchen", 2599, 10))
	require.NoError(t, err)
	require.NotNil(t, res.Product)

	require.Len(t, f.product.upserted, 1)
	assert.Equal(t, "Teapot", f.product.upserted[0].Name)
	assert.Equal(t, int64(2599), f.product.upserted[0].Price)
	assert.Equal(t, f.category.created["Kitchen"].ID, f.product.upserted[0].CategoryID)
	assert.True(t, f.db.lastTx.committed)
	assert.Contains(t, f.cache.deleted, res.Product.ID)
}

func TestUpsertProduct_ReusesExistingCategory(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.uc.UpsertProduct(ctx, NewUpsertProductReq("Teapot", "Kitchen", 2599, 10))
	require.NoError(t, err)
	_, err = f.uc.UpsertProduct(ctx, NewUpsertProductReq("Kettle", "Kitchen", 3999, 5))
	require.NoError(t, err)

	require.Len(t, f.category.created, 1)
	require.Len(t, f.product.upserted, 2)
	assert.Equal(t, f.product.upserted[0].CategoryID, f.product.upserted[1].CategoryID)
}

func TestUpsertProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *UpsertProductReq
		wantErr error
	}{
		{"blank name", NewUpsertProductReq("  ", "Kitchen", 100, 1), e.ErrProductNameRequired},
		{"blank category", NewUpsertProductReq("Teapot", "", 100, 1), e.ErrMissingFields},
		{"zero price", NewUpsertProductReq("Teapot", "Kitchen", 0, 1), e.ErrPriceMustBePositive},
		{"negative stock", NewUpsertProductReq("Teapot", "Kitchen", 100, -1), e.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()

			_, err := f.uc.UpsertProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			// rejected before any transaction was opened
			assert.Nil(t, f.db.lastTx)
			assert.Empty(t, f.product.upserted)
		})
	}
}

func TestGetProductsInfo_CacheHitSkipsDatabase(t *testing.T) {
	f := newCatalogFixture()
	f.cache.store[1] = ProductInfo{ID: 1, Name: "Teapot", Price: 2599, Stock: 10}
	f.cache.store[2] = ProductInfo{ID: 2, Name: "Kettle", Price: 3999, Stock: 5}

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1, 2}))
	require.NoError(t, err)

	assert.Len(t, res.Products, 2)
	assert.Empty(t, res.NotFoundProducts)
	assert.Empty(t, f.product.queried)
}

func TestGetProductsInfo_MissesFallThroughToDatabase(t *testing.T) {
	f := newCatalogFixture()
	f.cache.store[1] = ProductInfo{ID: 1, Name: "Teapot", Price: 2599, Stock: 10}
	f.product.infos[2] = ProductInfo{ID: 2, Name: "Kettle", Price: 3999, Stock: 5}

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1, 2, 3}))
	require.NoError(t, err)

	assert.Len(t, res.Products, 2)
	assert.Equal(t, []int64{3}, res.NotFoundProducts)
	require.Len(t, f.product.queried, 1)
	assert.Equal(t, []int64{2, 3}, f.product.queried[0])

	// db misses are cached in the background
	require.Eventually(t, func() bool { return f.cache.setCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestGetProductsInfo_NoIDs(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq(nil))
	require.ErrorIs(t, err, e.ErrNoProducts)
}

func TestAdjustStock_ReplenishesAndInvalidatesCache(t *testing.T) {
	f := newCatalogFixture()
	f.product.infos[1] = ProductInfo{ID: 1, Name: "Teapot", Price: 2599, Stock: 10}
	f.cache.store[1] = ProductInfo{ID: 1, Name: "Teapot", Price: 2599, Stock: 10}

	err := f.uc.AdjustStock(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.product.released[1])
	assert.True(t, f.db.lastTx.committed)
	assert.Equal(t, []int64{1}, f.cache.deleted)
}

func TestAdjustStock_RejectsNonPositiveDelta(t *testing.T) {
	f := newCatalogFixture()

	err := f.uc.AdjustStock(context.Background(), 1, 0)
	require.ErrorIs(t, err, e.ErrInvalidQuantity)
	assert.Nil(t, f.db.lastTx)
}
