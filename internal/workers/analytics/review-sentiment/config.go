package reviewsentiment

type Config struct {
	ReviewsDataset string
	// SampleSize caps how many leading rows are scored.
	SampleSize int
}

func LoadConfig() *Config {
	return &Config{
		ReviewsDataset: "customer_reviews_sample",
		SampleSize:     200,
	}
}
