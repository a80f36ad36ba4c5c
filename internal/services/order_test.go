package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beverage-backend/internal/models"
)

func TestPlaceOrderComputesSnapshotTotals(t *testing.T) {
	_, catalog, pricing, orders := newServices(t)
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	bs, err := catalog.CreateSize(ctx, "Medium")
	require.NoError(t, err)
	_, err = pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("3.00"))
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "Alice", "a@x.com", []OrderItemRequest{
		{BeverageTypeID: bt.ID, BeverageSizeID: bs.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", order.CustomerName)
	assert.NotEmpty(t, order.ConfirmationNumber)
	assert.False(t, order.CreatedAt.IsZero())
	assert.True(t, order.TotalPrice.Equal(models.MustPrice("6.00").Decimal), "got total %s", order.TotalPrice)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.True(t, item.UnitPrice.Equal(models.MustPrice("3.00").Decimal))
	assert.True(t, item.LineTotal.Equal(models.MustPrice("6.00").Decimal))
	assert.Equal(t, 2, item.Quantity)

	// Read-after-write: the returned order carries resolved beverage data,
	// not just ids.
	require.NotNil(t, item.BeverageType)
	require.NotNil(t, item.BeverageSize)
	assert.Equal(t, "Lemonade", item.BeverageType.Name)
	assert.Equal(t, "Medium", item.BeverageSize.Name)
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	_, catalog, pricing, orders := newServices(t)
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	bs, err := catalog.CreateSize(ctx, "Medium")
	require.NoError(t, err)
	_, err = pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("3.00"))
	require.NoError(t, err)

	valid := []OrderItemRequest{{BeverageTypeID: bt.ID, BeverageSizeID: bs.ID, Quantity: 1}}

	_, err = orders.PlaceOrder(ctx, "", "a@x.com", valid)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = orders.PlaceOrder(ctx, "Alice", "  ", valid)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = orders.PlaceOrder(ctx, "Alice", "a@x.com", nil)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	for _, qty := range []int{0, -1} {
		_, err = orders.PlaceOrder(ctx, "Alice", "a@x.com", []OrderItemRequest{
			{BeverageTypeID: bt.ID, BeverageSizeID: bs.ID, Quantity: qty},
		})
		assert.Equal(t, KindInvalidArgument, KindOf(err), "quantity %d must be rejected", qty)
	}

	all, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected orders must not be persisted")
}

func TestPlaceOrderIsAtomicOnMissingPriceLink(t *testing.T) {
	db, catalog, pricing, orders := newServices(t)
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	medium, err := catalog.CreateSize(ctx, "Medium")
	require.NoError(t, err)
	large, err := catalog.CreateSize(ctx, "Large")
	require.NoError(t, err)
	// Only Medium is priced; Large has no link.
	_, err = pricing.CreateLink(ctx, bt.ID, medium.ID, models.MustPrice("3.00"))
	require.NoError(t, err)

	_, err = orders.PlaceOrder(ctx, "Alice", "a@x.com", []OrderItemRequest{
		{BeverageTypeID: bt.ID, BeverageSizeID: medium.ID, Quantity: 2},
		{BeverageTypeID: bt.ID, BeverageSizeID: large.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	// The valid first line must not survive the failed order.
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestPlaceOrderPreservesItemOrder(t *testing.T) {
	_, catalog, pricing, orders := newServices(t)
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	sizes := make([]*models.BeverageSize, 0, 3)
	for i, name := range []string{"Small", "Medium", "Large"} {
		bs, err := catalog.CreateSize(ctx, name)
		require.NoError(t, err)
		_, err = pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("2.00").MulQuantity(i+1))
		require.NoError(t, err)
		sizes = append(sizes, bs)
	}

	// Submit in reverse of creation order to prove ordering comes from the
	// request, not the catalog.
	order, err := orders.PlaceOrder(ctx, "Bob", "555-0100", []OrderItemRequest{
		{BeverageTypeID: bt.ID, BeverageSizeID: sizes[2].ID, Quantity: 1},
		{BeverageTypeID: bt.ID, BeverageSizeID: sizes[0].ID, Quantity: 1},
		{BeverageTypeID: bt.ID, BeverageSizeID: sizes[1].ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 3)
	assert.Equal(t, sizes[2].ID, order.Items[0].BeverageSizeID)
	assert.Equal(t, sizes[0].ID, order.Items[1].BeverageSizeID)
	assert.Equal(t, sizes[1].ID, order.Items[2].BeverageSizeID)

	// Total is the sum regardless of line order: 6.00 + 2.00 + 4.00.
	assert.True(t, order.TotalPrice.Equal(models.MustPrice("12.00").Decimal))

	// The same ordering holds on a fresh read.
	got, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, sizes[2].ID, got.Items[0].BeverageSizeID)
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	_, catalog, pricing, orders := newServices(t)
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	bs, err := catalog.CreateSize(ctx, "Medium")
	require.NoError(t, err)
	link, err := pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("3.00"))
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "Alice", "a@x.com", []OrderItemRequest{
		{BeverageTypeID: bt.ID, BeverageSizeID: bs.ID, Quantity: 2},
	})
	require.NoError(t, err)

	raised := models.MustPrice("4.00")
	_, err = pricing.UpdateLink(ctx, link.ID, PriceLinkUpdate{Price: &raised})
	require.NoError(t, err)

	got, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(models.MustPrice("6.00").Decimal), "placed orders must keep their snapshot total")
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(models.MustPrice("3.00").Decimal))
}

func TestGetOrderNotFound(t *testing.T) {
	_, _, _, orders := newServices(t)

	_, err := orders.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPlaceOrderUsesInjectedConfirmationGenerator(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	pricing := NewPricingService(db, catalog)
	orders := NewOrderService(db, pricing, func() string { return "CONF-FIXED" })
	ctx := context.Background()

	bt, err := catalog.CreateType(ctx, "Lemonade")
	require.NoError(t, err)
	bs, err := catalog.CreateSize(ctx, "Medium")
	require.NoError(t, err)
	_, err = pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("3.00"))
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, "Alice", "a@x.com", []OrderItemRequest{
		{BeverageTypeID: bt.ID, BeverageSizeID: bs.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "CONF-FIXED", order.ConfirmationNumber)
}
