// internal/models/insight.go
package models

import (
	"encoding/json"
	"fmt"
)

// InsightType tags an insight. The set is open; error, general and
// ai_enhanced are reserved and carry fixed payload shapes.
type InsightType string

const (
	InsightError      InsightType = "error"
	InsightGeneral    InsightType = "general"
	InsightAIEnhanced InsightType = "ai_enhanced"

	InsightForecast         InsightType = "forecast"
	InsightCategoryForecast InsightType = "category_forecast"
	InsightSeasonal         InsightType = "seasonal"

	InsightInventory    InsightType = "inventory"
	InsightStockoutRisk InsightType = "stockout_risk"

	InsightShipping       InsightType = "shipping"
	InsightBestCouriers   InsightType = "best_couriers"
	InsightShippingImpact InsightType = "shipping_impact"

	InsightSentiment       InsightType = "sentiment"
	InsightRatingBreakdown InsightType = "rating_breakdown"
	InsightCriticalIssues  InsightType = "critical_issues"

	InsightWarehouse          InsightType = "warehouse"
	InsightWarehouseBest      InsightType = "warehouse_best"
	InsightWarehouseFinancial InsightType = "warehouse_financial"
)

// Payload is the structured data attached to an insight. Each insight tag
// has its own payload type.
type Payload interface {
	InsightType() InsightType
}

// Insight is one unit of answer content.
type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
	Data Payload     `json:"data"`
}

// NewInsight builds an insight whose tag is taken from its payload.
func NewInsight(text string, data Payload) Insight {
	return Insight{Type: data.InsightType(), Text: text, Data: data}
}

// NewErrorInsight builds the reserved error insight. The message is carried
// both in the text and in the payload.
func NewErrorInsight(title string, err error) Insight {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	text := fmt.Sprintf("⚠️ **%s**\n\n%s\n\nPlease try rephrasing your question.", title, msg)
	return Insight{Type: InsightError, Text: text, Data: ErrorData{Error: msg}}
}

// NewGeneralInsight builds the reserved general insight.
func NewGeneralInsight(text string) Insight {
	return Insight{Type: InsightGeneral, Text: text, Data: GeneralData{}}
}

// IsError reports whether the insight is the reserved error insight.
func (i Insight) IsError() bool {
	return i.Type == InsightError
}

var payloadFactories = map[InsightType]func() Payload{
	InsightError:              func() Payload { return &ErrorData{} },
	InsightGeneral:            func() Payload { return &GeneralData{} },
	InsightAIEnhanced:         func() Payload { return &AIEnhancedData{} },
	InsightForecast:           func() Payload { return &ForecastData{} },
	InsightCategoryForecast:   func() Payload { return &CategoryForecastData{} },
	InsightSeasonal:           func() Payload { return &SeasonalData{} },
	InsightInventory:          func() Payload { return &InventoryData{} },
	InsightStockoutRisk:       func() Payload { return &StockoutRiskData{} },
	InsightShipping:           func() Payload { return &ShippingData{} },
	InsightBestCouriers:       func() Payload { return &BestCouriersData{} },
	InsightShippingImpact:     func() Payload { return &ShippingImpactData{} },
	InsightSentiment:          func() Payload { return &SentimentData{} },
	InsightRatingBreakdown:    func() Payload { return &RatingBreakdownData{} },
	InsightCriticalIssues:     func() Payload { return &CriticalIssuesData{} },
	InsightWarehouse:          func() Payload { return &WarehouseData{} },
	InsightWarehouseBest:      func() Payload { return &WarehouseBestData{} },
	InsightWarehouseFinancial: func() Payload { return &WarehouseFinancialData{} },
}

// UnmarshalJSON decodes the payload according to the insight tag. Unknown
// tags keep their data as RawData.
func (i *Insight) UnmarshalJSON(b []byte) error {
	var wire struct {
		Type InsightType     `json:"type"`
		Text string          `json:"text"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	i.Type = wire.Type
	i.Text = wire.Text

	factory, ok := payloadFactories[wire.Type]
	if !ok {
		i.Data = RawData{Tag: wire.Type, Raw: wire.Data}
		return nil
	}

	target := factory()
	if len(wire.Data) > 0 && string(wire.Data) != "null" {
		if err := json.Unmarshal(wire.Data, target); err != nil {
			return fmt.Errorf("decode %s payload: %w", wire.Type, err)
		}
	}
	i.Data = derefPayload(target)
	return nil
}

func derefPayload(p Payload) Payload {
	switch v := p.(type) {
	case *ErrorData:
		return *v
	case *GeneralData:
		return *v
	case *AIEnhancedData:
		return *v
	case *ForecastData:
		return *v
	case *CategoryForecastData:
		return *v
	case *SeasonalData:
		return *v
	case *InventoryData:
		return *v
	case *StockoutRiskData:
		return *v
	case *ShippingData:
		return *v
	case *BestCouriersData:
		return *v
	case *ShippingImpactData:
		return *v
	case *SentimentData:
		return *v
	case *RatingBreakdownData:
		return *v
	case *CriticalIssuesData:
		return *v
	case *WarehouseData:
		return *v
	case *WarehouseBestData:
		return *v
	case *WarehouseFinancialData:
		return *v
	default:
		return p
	}
}
