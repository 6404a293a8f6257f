package courierperformance

type Config struct {
	TransportModel   string
	TransportDataset string
	ListedCouriers   int
	// CostSavingsFactor scales the per-shipment fuel cost gap to a monthly figure.
	CostSavingsFactor float64
}

func LoadConfig() *Config {
	return &Config{
		TransportModel:    "model_transport",
		TransportDataset:  "transportations_sample",
		ListedCouriers:    3,
		CostSavingsFactor: 1000,
	}
}
