package maintenance

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
	"storefront-api/internal/repository/memory"
	"storefront-api/internal/services"
)

func TestSeedCatalog_ReplacesProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Products.Create(ctx, &models.Product{Name: "Discontinued Widget", Description: "widget", Category: models.CategorySarees}))

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	n, err := SeedCatalog(ctx, store.Products, now)
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	total, err := store.Products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)

	page, _, err := store.Products.List(ctx, models.ProductQuery{Search: "widget"})
	require.NoError(t, err)
	assert.Empty(t, page)

	fresh, _, err := store.Products.List(ctx, models.ProductQuery{NewArrival: true})
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	for _, p := range fresh {
		require.NotNil(t, p.NewArrivalDate)
		assert.Equal(t, now, *p.NewArrivalDate)
	}

	// running twice leaves the same catalog
	n, err = SeedCatalog(ctx, store.Products, now)
	require.NoError(t, err)
	total, err = store.Products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
}

func TestFixCategories(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := SeedCatalog(ctx, store.Products, time.Now())
	require.NoError(t, err)

	n, categories, err := FixCategories(ctx, store.Products)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, []string{"Jewellery", "Sarees", "Stationery"}, categories)

	n, _, err = FixCategories(ctx, store.Products)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogPrefixes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	buf := captureLog(t)

	_, err := SeedCatalog(ctx, store.Products, time.Now())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[Seed] inserted 11 sample products")

	buf.Reset()
	_, _, err = FixCategories(ctx, store.Products)
	require.NoError(t, err)
	_, err = Inspect(ctx, NewStoreInspector(store))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[Maintenance] migrated 5 products")
	assert.Contains(t, buf.String(), "[Maintenance] total orders: 0")
	assert.NotContains(t, buf.String(), "[Seed]")
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := services.New(store, auth.NewTokenService("s", time.Hour), events.LogPublisher{})
	account := config.AdminAccount{Name: "Admin User", Email: "Admin@Shop.test", Password: "admin123", Phone: "7550000000"}

	created, err := CreateAdmin(ctx, svc.Users, account)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = CreateAdmin(ctx, svc.Users, account)
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.Users.GetByEmail(ctx, "admin@shop.test")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	_, err = CreateAdmin(ctx, svc.Users, config.AdminAccount{Email: "x@shop.test"})
	assert.Error(t, err)
}

func TestInspect_Store(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := SeedCatalog(ctx, store.Products, time.Now())
	require.NoError(t, err)

	report, err := Inspect(ctx, NewStoreInspector(store))
	require.NoError(t, err)
	assert.Zero(t, report.TotalOrders)
	assert.Empty(t, report.SampleOrders)
	assert.Equal(t, []string{"Jewelry", "Sarees", "Stationery"}, report.Categories)

	for i := 0; i < 7; i++ {
		require.NoError(t, store.Orders.Create(ctx, &models.Order{User: "u1", TotalAmount: float64(i), Status: models.StatusPending}))
	}
	report, err = Inspect(ctx, NewStoreInspector(store))
	require.NoError(t, err)
	assert.Equal(t, int64(7), report.TotalOrders)
	assert.Len(t, report.SampleOrders, 5)
	assert.Equal(t, "u1", report.SampleOrders[0].UserID)
}

type failingInspector struct{}

func (failingInspector) CountOrders(ctx context.Context) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingInspector) RecentOrders(ctx context.Context, n int) ([]database.OrderSummary, error) {
	return nil, nil
}

func (failingInspector) Categories(ctx context.Context) ([]string, error) { return nil, nil }

func TestInspect_Error(t *testing.T) {
	_, err := Inspect(context.Background(), failingInspector{})
	assert.ErrorContains(t, err, "connection refused")
}

var _ Inspector = (*database.RestInspector)(nil)
