package buildresponse

type Config struct {
	// ValidateEnvelope checks every built response against the envelope schema.
	ValidateEnvelope bool
}

func LoadConfig() *Config {
	return &Config{ValidateEnvelope: true}
}
