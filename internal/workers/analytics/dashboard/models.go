package dashboard

const (
	ordersDataset    = "orders_sample"
	transportDataset = "transportations_sample"
	warehouseDataset = "warehouse_ops_sample"
	reviewsDataset   = "customer_reviews_sample"
)

// Metrics are the headline KPIs. A metric whose dataset could not be loaded
// stays zero and the dataset is named in Summary.Errors.
type Metrics struct {
	TotalOrders        int     `json:"total_orders"`
	TotalOrderValue    float64 `json:"total_order_value"`
	TotalRoutes        int     `json:"total_routes"`
	AvgDeliveryDays    float64 `json:"avg_delivery_days"`
	TotalWarehouses    int     `json:"total_warehouses"`
	AvgProcessingHours float64 `json:"avg_processing_hours"`
	TotalReviews       int     `json:"total_reviews"`
	AvgRating          float64 `json:"avg_rating"`
	AvgSentiment       float64 `json:"avg_sentiment"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	AvgValue float64 `json:"avg_value"`
	Orders   int     `json:"orders"`
}

type CourierKPI struct {
	Courier         string  `json:"courier"`
	AvgDeliveryDays float64 `json:"avg_delivery_days"`
	Shipments       int     `json:"shipments"`
}

type WarehouseKPI struct {
	Warehouse          string  `json:"warehouse"`
	AvgProcessingHours float64 `json:"avg_processing_hours"`
	Operations         int     `json:"operations"`
}

type Summary struct {
	Success               bool              `json:"success"`
	Timestamp             string            `json:"timestamp"`
	Metrics               Metrics           `json:"metrics"`
	OrderValueByCategory  []CategoryValue   `json:"order_value_by_category"`
	CourierPerformance    []CourierKPI      `json:"courier_performance"`
	WarehouseProcessing   []WarehouseKPI    `json:"warehouse_processing"`
	SentimentDistribution map[string]int    `json:"sentiment_distribution"`
	Errors                map[string]string `json:"errors,omitempty"`
}
