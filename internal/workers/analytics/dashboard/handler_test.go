package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/analytics/analyticstest"
	"supplychain-insights/internal/common/logger"
)

const (
	ordersCSV = `order_id,category,order_value_inr
1,Electronics,1000
2,Electronics,3000
3,Grocery,200
4,Fashion,800
`
	transportCSV = `route_id,courier_partner,delivery_time_days
1,BlueDart,2
2,Delhivery,4
3,BlueDart,3
4,Ekart,6
`
	warehouseCSV = `warehouse_id,processing_time_hrs
WH1,10
WH2,20
WH1,14
`
	reviewsCSV = `review_id,review_text,rating
1,Great product and fast delivery,5
2,Terrible packaging and bad support,1
3,,3
`
)

var fixedTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestSummary(t *testing.T) {
	catalog := analyticstest.Catalog(
		analyticstest.Table(t, ordersDataset, ordersCSV),
		analyticstest.Table(t, transportDataset, transportCSV),
		analyticstest.Table(t, warehouseDataset, warehouseCSV),
		analyticstest.Table(t, reviewsDataset, reviewsCSV),
	)
	svc := NewService(catalog, nil, logger.NewTestLogger(t)).WithClock(func() time.Time { return fixedTime })

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, sum.Success)
	assert.Empty(t, sum.Errors)
	assert.Equal(t, fixedTime.Format(time.RFC3339Nano), sum.Timestamp)

	m := sum.Metrics
	assert.Equal(t, 4, m.TotalOrders)
	assert.Equal(t, 5000.0, m.TotalOrderValue)
	assert.Equal(t, 4, m.TotalRoutes)
	assert.Equal(t, 3.75, m.AvgDeliveryDays)
	assert.Equal(t, 2, m.TotalWarehouses)
	assert.Equal(t, 14.67, m.AvgProcessingHours)
	assert.Equal(t, 3, m.TotalReviews)
	assert.Equal(t, 3.0, m.AvgRating)

	require.Len(t, sum.OrderValueByCategory, 3)
	assert.Equal(t, CategoryValue{Category: "Electronics", AvgValue: 2000, Orders: 2}, sum.OrderValueByCategory[0])
	assert.Equal(t, "Grocery", sum.OrderValueByCategory[2].Category)

	require.Len(t, sum.CourierPerformance, 3)
	assert.Equal(t, CourierKPI{Courier: "BlueDart", AvgDeliveryDays: 2.5, Shipments: 2}, sum.CourierPerformance[0])
	assert.Equal(t, "Ekart", sum.CourierPerformance[2].Courier)

	assert.Equal(t, []WarehouseKPI{
		{Warehouse: "WH1", AvgProcessingHours: 12, Operations: 2},
		{Warehouse: "WH2", AvgProcessingHours: 20, Operations: 1},
	}, sum.WarehouseProcessing)

	total := 0
	for _, n := range sum.SentimentDistribution {
		total += n
	}
	assert.Equal(t, 2, total)
}

func TestSummary_MissingDatasets(t *testing.T) {
	catalog := analyticstest.Catalog(analyticstest.Table(t, ordersDataset, ordersCSV))
	svc := NewService(catalog, nil, logger.NewTestLogger(t))

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, sum.Success)
	assert.Equal(t, 4, sum.Metrics.TotalOrders)
	assert.Len(t, sum.Errors, 3)
	assert.Contains(t, sum.Errors, reviewsDataset)
	assert.Contains(t, sum.Errors[transportDataset], "not found")
	assert.Empty(t, sum.CourierPerformance)
}

func TestSummary_NothingAvailable(t *testing.T) {
	sum, err := NewService(analyticstest.Catalog(), nil, nil).Summary(context.Background())
	require.NoError(t, err)

	assert.False(t, sum.Success)
	assert.Len(t, sum.Errors, 4)
}

func TestSummary_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(analyticstest.Catalog(), nil, nil).Summary(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
