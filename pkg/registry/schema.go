package registry

// CapabilityRegistry describes what the service can answer. It feeds the
// general-help insight and the service description.
type CapabilityRegistry struct {
	Service      string       `json:"service" yaml:"service"`
	Version      string       `json:"version" yaml:"version"`
	LastUpdated  string       `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
	Examples     []string     `json:"examples" yaml:"examples"`
}

type Capability struct {
	Intent      string   `json:"intent" yaml:"intent"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Datasets    []string `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	Models      []string `json:"models,omitempty" yaml:"models,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
