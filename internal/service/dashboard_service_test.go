package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/pkg/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-process cache.Store.
type memStore struct {
	data map[string][]byte
	sets int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) GetJSON(_ context.Context, key string, dest any) error {
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 7, ClampDays(0))
	assert.Equal(t, 7, ClampDays(-3))
	assert.Equal(t, 30, ClampDays(30))
	assert.Equal(t, 365, ClampDays(1000))
}

func TestDashboardStatsAreCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemStore()
	dash := NewDashboardService(repository.NewDashboardRepo(f.db), store, time.Minute, nil)

	f.product(t, "10000000001")
	stats, err := dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, 1, store.sets)

	// served from cache until invalidated
	f.product(t, "10000000002")
	stats, err = dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, 1, store.sets)

	dash.InvalidateStats(ctx)
	stats, err = dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
}

func TestSalesMovementWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dash := NewDashboardService(repository.NewDashboardRepo(f.db), nil, 0, nil)

	f.product(t, "10000000001")
	c := f.client(t, "buyer@acme.in")
	_, err := f.sales.CreateBuy(ctx, &CreateBuyRequest{
		AdsID: "10000000001", ClientID: c.ID, SellingPrice: decimal.NewFromInt(25000),
	}, actor)
	require.NoError(t, err)

	points, err := dash.GetSalesMovement(ctx, 3)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, fixedNow.AddDate(0, 0, -2).Format(dateLayout), points[0].Date)
	assert.Equal(t, fixedNow.Format(dateLayout), points[2].Date)
	assert.Equal(t, int64(1), points[2].Buys)

	stats, err := dash.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ProductsByStatus[string(model.StatusSold)])
}
