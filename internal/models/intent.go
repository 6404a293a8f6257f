// internal/models/intent.go
package models

import "strings"

// Intent is the closed category that selects which analytics handler answers a question.
type Intent string

const (
	IntentForecast  Intent = "forecast"
	IntentInventory Intent = "inventory"
	IntentShipping  Intent = "shipping"
	IntentSentiment Intent = "sentiment"
	IntentWarehouse Intent = "warehouse"
	IntentGeneral   Intent = "general"
)

// Intents lists every valid intent in keyword priority order.
var Intents = []Intent{
	IntentForecast,
	IntentInventory,
	IntentShipping,
	IntentSentiment,
	IntentWarehouse,
	IntentGeneral,
}

// ParseIntent normalizes s and reports whether it names a member of the closed set.
func ParseIntent(s string) (Intent, bool) {
	candidate := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, intent := range Intents {
		if candidate == intent {
			return intent, true
		}
	}
	return "", false
}

func (i Intent) String() string {
	return string(i)
}
