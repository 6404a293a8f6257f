// internal/models/payloads.go
package models

import "encoding/json"

// ErrorData is the fixed payload of the error insight.
type ErrorData struct {
	Error string `json:"error"`
}

func (ErrorData) InsightType() InsightType { return InsightError }

// GeneralData is the empty payload of the general insight.
type GeneralData struct{}

func (GeneralData) InsightType() InsightType { return InsightGeneral }

// AIEnhancedData wraps the insights a narrative was generated from.
type AIEnhancedData struct {
	OriginalInsightsCount int       `json:"original_insights_count"`
	EnhancedBy            string    `json:"enhanced_by"`
	RawInsights           []Insight `json:"raw_insights"`
}

func (AIEnhancedData) InsightType() InsightType { return InsightAIEnhanced }

// RawData keeps the undecoded payload of an insight tag this build does not know.
type RawData struct {
	Tag InsightType
	Raw json.RawMessage
}

func (r RawData) InsightType() InsightType { return r.Tag }

func (r RawData) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// --- forecast ---

type ForecastPoint struct {
	Date  string  `json:"ds"`
	Value float64 `json:"yhat"`
}

type ForecastData struct {
	Model     string          `json:"model"`
	Days      int             `json:"days"`
	AvgDemand float64         `json:"avg_demand"`
	Trend     float64         `json:"trend"`
	TrendPct  float64         `json:"trend_pct"`
	Peak      float64         `json:"peak"`
	Low       float64         `json:"low"`
	Strength  string          `json:"strength"`
	Direction string          `json:"direction"`
	Sample    []ForecastPoint `json:"forecast_sample,omitempty"`
}

func (ForecastData) InsightType() InsightType { return InsightForecast }

type CategoryPrediction struct {
	Category       string  `json:"category"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	TotalPredicted float64 `json:"total_predicted"`
	GrowthPct      float64 `json:"growth_pct"`
	Priority       string  `json:"priority"`
}

type CategoryForecastData []CategoryPrediction

func (CategoryForecastData) InsightType() InsightType { return InsightCategoryForecast }

type SeasonalData struct {
	Quarter          string  `json:"quarter"`
	ExpectedIncrease float64 `json:"expected_increase"`
	PeakMonth        int     `json:"peak_month"`
}

func (SeasonalData) InsightType() InsightType { return InsightSeasonal }

// --- inventory ---

type StockRecommendation struct {
	Category                 string  `json:"category"`
	CurrentDemand            float64 `json:"current_demand"`
	PredictedDemand          float64 `json:"predicted_demand"`
	AdditionalInvestment     float64 `json:"additional_investment"`
	RecommendedStockIncrease string  `json:"recommended_stock_increase"`
	Priority                 string  `json:"priority"`
	RiskLevel                string  `json:"risk_level"`
	OrderCount               int     `json:"order_count"`
}

type InventoryData []StockRecommendation

func (InventoryData) InsightType() InsightType { return InsightInventory }

type StockoutRiskData struct {
	HighRiskCategories []string `json:"high_risk_categories"`
	RiskCount          int      `json:"risk_count"`
}

func (StockoutRiskData) InsightType() InsightType { return InsightStockoutRisk }

// --- shipping ---

type CourierStats struct {
	Courier          string  `json:"courier"`
	AvgDeliveryTime  float64 `json:"avg_delivery_time"`
	StdDeliveryTime  float64 `json:"std_delivery_time"`
	MinDelivery      float64 `json:"min_delivery"`
	MaxDelivery      float64 `json:"max_delivery"`
	AvgFuelCost      float64 `json:"avg_fuel_cost"`
	TotalFuelCost    float64 `json:"total_fuel_cost"`
	AvgDistance      float64 `json:"avg_distance"`
	PerformanceVsAvg float64 `json:"performance_vs_avg"`
	Reliability      float64 `json:"reliability"`
}

type ShippingData struct {
	ProblemCouriers []CourierStats `json:"problem_couriers"`
	CourierCount    int            `json:"courier_count"`
	NetworkAvg      float64        `json:"network_avg"`
	DelayImpactPct  float64        `json:"delay_impact_pct"`
}

func (ShippingData) InsightType() InsightType { return InsightShipping }

type BestCouriersData []CourierStats

func (BestCouriersData) InsightType() InsightType { return InsightBestCouriers }

type ShippingImpactData struct {
	DelayImpactPct float64 `json:"delay_impact_pct"`
	TimeSavings    float64 `json:"time_savings"`
	CostSavings    float64 `json:"cost_savings"`
}

func (ShippingImpactData) InsightType() InsightType { return InsightShippingImpact }

// --- sentiment ---

type SentimentData struct {
	Overall       string  `json:"overall"`
	Status        string  `json:"status"`
	PositivePct   float64 `json:"positive_pct"`
	NegativePct   float64 `json:"negative_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	CompoundScore float64 `json:"compound_score"`
	SampleSize    int     `json:"sample_size"`
}

func (SentimentData) InsightType() InsightType { return InsightSentiment }

type RatingBreakdownData struct {
	AvgRating          float64        `json:"avg_rating"`
	Health             string         `json:"health"`
	HighRatings        int            `json:"high_ratings"`
	LowRatings         int            `json:"low_ratings"`
	HighRatingPct      float64        `json:"high_rating_pct"`
	LowRatingPct       float64        `json:"low_rating_pct"`
	NPS                float64        `json:"nps"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

func (RatingBreakdownData) InsightType() InsightType { return InsightRatingBreakdown }

type CriticalIssuesData struct {
	CriticalCount int     `json:"critical_count"`
	CriticalPct   float64 `json:"critical_pct"`
}

func (CriticalIssuesData) InsightType() InsightType { return InsightCriticalIssues }

// --- warehouse ---

type WarehouseStats struct {
	WarehouseID       string  `json:"warehouse_id"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	StdProcessing     float64 `json:"std_processing"`
	MinProcessing     float64 `json:"min_processing"`
	MaxProcessing     float64 `json:"max_processing"`
	AvgCost           float64 `json:"avg_cost"`
	TotalCost         float64 `json:"total_cost"`
	AvgWorkforce      float64 `json:"avg_workforce"`
	EfficiencyScore   float64 `json:"efficiency_score"`
	TimeVsAvg         float64 `json:"time_vs_avg"`
	CostVsAvg         float64 `json:"cost_vs_avg"`
}

type WarehouseData struct {
	Inefficient      []WarehouseStats `json:"inefficient"`
	WarehouseCount   int              `json:"warehouse_count"`
	NetworkAvgTime   float64          `json:"network_avg_time"`
	NetworkAvgCost   float64          `json:"network_avg_cost"`
	PotentialSavings float64          `json:"potential_savings"`
}

func (WarehouseData) InsightType() InsightType { return InsightWarehouse }

type WarehouseBestData []WarehouseStats

func (WarehouseBestData) InsightType() InsightType { return InsightWarehouseBest }

type WarehouseFinancialData struct {
	TotalOperations  int     `json:"total_operations"`
	TotalCost        float64 `json:"total_cost"`
	PotentialSavings float64 `json:"potential_savings"`
	SavingsPct       float64 `json:"savings_pct"`
	TimeSavings      float64 `json:"time_savings"`
}

func (WarehouseFinancialData) InsightType() InsightType { return InsightWarehouseFinancial }
