package demandforecast

import (
	"supplychain-insights/internal/models"
)

const (
	ordersCategoryColumn = "category"
	ordersValueColumn    = "order_value_inr"
)

// forecastSeries is the daily prediction over the horizon.
type forecastSeries struct {
	Model  string
	Points []models.ForecastPoint
}

func (s forecastSeries) values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// seasonalOutlook is reported for Q4 questions and questions naming a month.
var seasonalOutlook = models.SeasonalData{
	Quarter:          string(models.Q4),
	ExpectedIncrease: 0.30,
	PeakMonth:        12,
}
