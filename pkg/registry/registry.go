package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRegistry reads a registry from JSON, or YAML when the extension is
// .yaml or .yml.
func LoadRegistry(path string) (*CapabilityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg CapabilityRegistry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &reg)
	default:
		err = json.Unmarshal(data, &reg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if len(reg.Capabilities) == 0 {
		return nil, fmt.Errorf("registry %s lists no capabilities", path)
	}
	return &reg, nil
}

// DefaultRegistry is the built-in capability list.
func DefaultRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		Service: "Supply Chain Insights",
		Version: "2.0.0",
		Capabilities: []Capability{
			{
				Intent:      "forecast",
				DisplayName: "Forecasting",
				Description: "Demand predictions, seasonal trends",
				Icon:        "📈",
				Models:      []string{"model_seasonal_prophet", "model_seasonal", "model_seasonal_lgbm", "model_orders"},
				Datasets:    []string{"orders_sample"},
			},
			{
				Intent:      "inventory",
				DisplayName: "Inventory",
				Description: "Stock recommendations, sufficiency checks",
				Icon:        "📦",
				Models:      []string{"model_orders"},
				Datasets:    []string{"orders_sample"},
			},
			{
				Intent:      "shipping",
				DisplayName: "Shipping",
				Description: "Courier performance, delay analysis",
				Icon:        "🚚",
				Models:      []string{"model_transport"},
				Datasets:    []string{"transportations_sample"},
			},
			{
				Intent:      "sentiment",
				DisplayName: "Sentiment",
				Description: "Customer review analysis",
				Icon:        "💬",
				Datasets:    []string{"customer_reviews_sample"},
			},
			{
				Intent:      "warehouse",
				DisplayName: "Warehouse",
				Description: "Efficiency and optimization",
				Icon:        "🏭",
				Models:      []string{"model_warehouse"},
				Datasets:    []string{"warehouse_ops_sample"},
			},
		},
		Examples: []string{
			"What will Q4 demand look like?",
			"If demand increases by 20%, what stock adjustments are needed?",
			"How are customer reviews trending?",
		},
	}
}

// HelpText renders the capability list shown for general questions.
func (r *CapabilityRegistry) HelpText() string {
	var b strings.Builder
	b.WriteString("👋 I can help you with:\n\n")
	for _, c := range r.Capabilities {
		if c.Icon != "" {
			b.WriteString(c.Icon + " ")
		}
		fmt.Fprintf(&b, "**%s**: %s\n", c.DisplayName, c.Description)
	}
	if len(r.Examples) > 0 {
		b.WriteString("\nTry asking something like:\n")
		for i, ex := range r.Examples {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "• \"%s\"", ex)
		}
	}
	return b.String()
}

// Intents lists the intents with a registered capability, in order.
func (r *CapabilityRegistry) Intents() []string {
	out := make([]string, len(r.Capabilities))
	for i, c := range r.Capabilities {
		out[i] = c.Intent
	}
	return out
}

// Models lists every model named by a capability, without duplicates.
func (r *CapabilityRegistry) Models() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range r.Capabilities {
		for _, m := range c.Models {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
