package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.user(t, "buyer", false)
	f.user(t, "admin", true)
	p := f.product(t, "Notebook", 0.1, 100)
	f.product(t, "Sticky Notes", 199, 10)

	for i := 0; i < 7; i++ {
		f.cart(t, buyer.ID, line(p.ID, 1))
		_, err := f.svc.Orders.Place(ctx, buyer.ID, address(), "")
		require.NoError(t, err)
	}
	for i := 0; i < 6; i++ {
		_, err := f.svc.Contacts.Create(ctx, validContact())
		require.NoError(t, err)
	}

	stats, err := f.svc.Admin.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(6), stats.TotalMessages)
	assert.Equal(t, 0.7, stats.TotalRevenue)

	require.Len(t, stats.RecentOrders, 5)
	require.NotNil(t, stats.RecentOrders[0].Buyer)
	assert.Equal(t, "buyer", stats.RecentOrders[0].Buyer.Name)
	assert.Empty(t, stats.RecentOrders[0].Buyer.Email)
	assert.Len(t, stats.RecentMessages, 5)
}

func TestAdminStats_Empty(t *testing.T) {
	f := newFixture(t)
	stats, err := f.svc.Admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Empty(t, stats.RecentOrders)
	assert.Empty(t, stats.RecentMessages)
}
