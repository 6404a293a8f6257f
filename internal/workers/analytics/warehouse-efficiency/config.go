package warehouseefficiency

type Config struct {
	WarehouseModel   string
	WarehouseDataset string
	ListedWarehouses int
}

func LoadConfig() *Config {
	return &Config{
		WarehouseModel:   "model_warehouse",
		WarehouseDataset: "warehouse_ops_sample",
		ListedWarehouses: 3,
	}
}
