package inventoryplanning

type Config struct {
	DefaultSurge  float64
	OrdersModel   string
	OrdersDataset string
	TopCategories int
	ListedItems   int
}

func LoadConfig() *Config {
	return &Config{
		DefaultSurge:  0.2,
		OrdersModel:   "model_orders",
		OrdersDataset: "orders_sample",
		TopCategories: 5,
		ListedItems:   3,
	}
}
