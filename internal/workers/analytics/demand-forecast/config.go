package demandforecast

type Config struct {
	DefaultDays int
	MaxDays     int
	// SeasonalModels is tried in order; the first that loads is used.
	SeasonalModels []string
	SampleSize     int

	OrdersModel    string
	OrdersDataset  string
	TopCategories  int
	DefaultMonths  []int
	ScenarioRows   int
	WarehouseCount int
}

func LoadConfig() *Config {
	return &Config{
		DefaultDays:    90,
		MaxDays:        730,
		SeasonalModels: []string{"model_seasonal_prophet", "model_seasonal", "model_seasonal_lgbm"},
		SampleSize:     10,
		OrdersModel:    "model_orders",
		OrdersDataset:  "orders_sample",
		TopCategories:  5,
		DefaultMonths:  []int{10, 11, 12},
		ScenarioRows:   30,
		WarehouseCount: 5,
	}
}
