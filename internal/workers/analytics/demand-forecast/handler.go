package demandforecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"supplychain-insights/internal/common/analytics"
	"supplychain-insights/internal/common/dataset"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/predictor"
	"supplychain-insights/internal/models"
)

const (
	Intent     = models.IntentForecast
	ErrorTitle = "Forecast Analysis Error"
)

type Handler struct {
	config     *Config
	predictors analytics.ModelProvider
	data       analytics.DataLoader
	now        func() time.Time
	logger     logger.Logger
}

func NewHandler(config *Config, predictors analytics.ModelProvider, data analytics.DataLoader, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config:     config,
		predictors: predictors,
		data:       data,
		now:        time.Now,
		logger:     log.WithFields(map[string]interface{}{"intent": Intent}),
	}
}

// WithClock fixes the forecast start date.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Analyze produces the demand outlook, then the optional per-category
// projection, then the seasonal note. Only the outlook is required.
func (h *Handler) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	var insights []models.Insight

	days := h.horizon(params)
	series, err := h.forecast(ctx, days)
	if err != nil {
		return insights, err
	}
	insights = append(insights, h.outlookInsight(series, days))

	if in, err := h.categoryForecast(ctx, params); err != nil {
		h.logger.Warn("category forecast skipped", map[string]interface{}{"error": err.Error()})
	} else {
		insights = append(insights, in)
	}

	if params.TargetMonth != nil || params.QuarterIs(models.Q4) {
		insights = append(insights, seasonalInsight())
	}

	return insights, nil
}

func (h *Handler) horizon(params models.ParamSet) int {
	days := params.DaysOr(h.config.DefaultDays)
	if days < 1 {
		days = h.config.DefaultDays
	}
	if h.config.MaxDays > 0 && days > h.config.MaxDays {
		days = h.config.MaxDays
	}
	return days
}

func (h *Handler) forecast(ctx context.Context, days int) (forecastSeries, error) {
	model, name, err := analytics.LoadModel(ctx, h.predictors, h.config.SeasonalModels...)
	if err != nil {
		return forecastSeries{}, err
	}

	start := h.now()
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	rows := make([]predictor.Features, days)
	dates := make([]time.Time, days)
	for i := range rows {
		d := start.AddDate(0, 0, i)
		dates[i] = d
		rows[i] = predictor.Features{
			"month": float64(d.Month()),
			"dow":   float64(mondayFirst(d.Weekday())),
			"day":   float64(i),
		}
	}

	preds, err := model.Predict(rows)
	if err != nil {
		return forecastSeries{}, errs.NewAnalysisFailedError("Demand forecast", err)
	}
	if len(preds) != days {
		return forecastSeries{}, errs.NewAnalysisFailedError("Demand forecast",
			fmt.Errorf("model %s returned %d values for %d days", name, len(preds), days))
	}

	series := forecastSeries{Model: name, Points: make([]models.ForecastPoint, days)}
	for i, v := range preds {
		series.Points[i] = models.ForecastPoint{Date: dates[i].Format("2006-01-02"), Value: dataset.Finite(v)}
	}
	return series, nil
}

func (h *Handler) outlookInsight(series forecastSeries, days int) models.Insight {
	values := series.values()
	stats := dataset.Describe(values)
	trend := values[len(values)-1] - values[0]
	trendPct := dataset.SafeDiv(trend, stats.Mean) * 100

	data := models.ForecastData{
		Model:     series.Model,
		Days:      days,
		AvgDemand: dataset.Round(stats.Mean, 2),
		Trend:     dataset.Round(trend, 2),
		TrendPct:  dataset.Round(trendPct, 2),
		Peak:      dataset.Round(stats.Max, 2),
		Low:       dataset.Round(stats.Min, 2),
		Strength:  trendStrength(trendPct),
		Direction: direction(trend),
		Sample:    analytics.Top(series.Points, h.config.SampleSize),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**📈 Demand Forecast (Next %d Days)**\n\n", days)
	fmt.Fprintf(&b, "**Outlook:** %s %s trend\n\n", data.Strength, data.Direction)
	b.WriteString("**Key Metrics:**\n")
	fmt.Fprintf(&b, "• Average demand index: **%.1f**\n", stats.Mean)
	fmt.Fprintf(&b, "• Change over the horizon: **%+.1f points** (%+.1f%%)\n", trend, trendPct)
	fmt.Fprintf(&b, "• Peak demand: **%.1f**\n", stats.Max)
	fmt.Fprintf(&b, "• Lowest demand: **%.1f**\n\n", stats.Min)
	fmt.Fprintf(&b, "**Recommendation:** %s", recommendation(trend))

	return models.NewInsight(b.String(), data)
}

func (h *Handler) categoryForecast(ctx context.Context, params models.ParamSet) (models.Insight, error) {
	model, err := h.predictors.Get(ctx, h.config.OrdersModel)
	if err != nil {
		return models.Insight{}, analytics.ModelError(h.config.OrdersModel, err)
	}
	table, err := analytics.LoadTable(ctx, h.data, h.config.OrdersDataset)
	if err != nil {
		return models.Insight{}, err
	}
	groups, err := dataset.GroupBy(table, ordersCategoryColumn, ordersValueColumn)
	if err != nil {
		return models.Insight{}, analytics.DatasetError(h.config.OrdersDataset, err)
	}
	if len(groups) == 0 {
		return models.Insight{}, fmt.Errorf("no categories in %s", h.config.OrdersDataset)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Size > groups[j].Size })
	groups = analytics.Top(groups, h.config.TopCategories)

	months := params.MonthsOr(h.config.DefaultMonths)
	predictions := make(models.CategoryForecastData, 0, len(groups))
	for idx, g := range groups {
		preds, err := model.Predict(h.scenarioRows(idx, months))
		if err != nil {
			return models.Insight{}, fmt.Errorf("predict %s: %w", g.Key, err)
		}

		avg := dataset.Finite(dataset.Mean(preds))
		current := g.Stats(ordersValueColumn).Mean
		growth := 0.0
		if current > 0 {
			growth = (avg - current) / current * 100
		}

		predictions = append(predictions, models.CategoryPrediction{
			Category:       g.Key,
			AvgOrderValue:  dataset.Round(avg, 2),
			TotalPredicted: dataset.Round(avg*float64(h.config.ScenarioRows), 2),
			GrowthPct:      dataset.Round(growth, 2),
			Priority:       growthPriority(growth),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].TotalPredicted > predictions[j].TotalPredicted
	})

	period := "upcoming period"
	if params.Quarter != nil {
		period = string(*params.Quarter)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**💰 Category Projections** (%s)\n\n**Top Revenue Generators:**\n", period)
	for i, p := range analytics.Top(predictions, 3) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• **%s**\n", p.Category)
		fmt.Fprintf(&b, "  - Avg order: %s\n", analytics.Rupees(p.AvgOrderValue))
		fmt.Fprintf(&b, "  - Projected total: %s\n", analytics.Rupees(p.TotalPredicted))
		fmt.Fprintf(&b, "  - Growth: %+.1f%% | Priority: %s", p.GrowthPct, p.Priority)
	}

	return models.NewInsight(b.String(), predictions), nil
}

// scenarioRows builds a month of synthetic orders for one category: months
// cycle through the window, days of week cycle Monday first, and each
// category is pinned to one warehouse.
func (h *Handler) scenarioRows(categoryIdx int, months []int) []predictor.Features {
	rows := make([]predictor.Features, h.config.ScenarioRows)
	for i := range rows {
		rows[i] = predictor.Features{
			"order_month":     float64(months[i%len(months)]),
			"order_dow":       float64(i % 7),
			"city":            0,
			"warehouse_id":    float64(categoryIdx % h.config.WarehouseCount),
			"category":        float64(categoryIdx),
			"courier_partner": 0,
			"route_id":        0,
		}
	}
	return rows
}

func seasonalInsight() models.Insight {
	text := "**🎄 Seasonal Outlook** (Q4)\n\n" +
		"**Expected:**\n" +
		fmt.Sprintf("• Demand up about **%.0f%%** on Q3\n", seasonalOutlook.ExpectedIncrease*100) +
		"• Peak around **mid-December**\n" +
		"• Electronics, jewelry and fashion lead the surge\n\n" +
		"**Actions:**\n" +
		"✓ Build inventory 2-3 weeks ahead of the peak\n" +
		"✓ Reserve extra warehouse capacity\n" +
		"✓ Give courier partners volume notice\n" +
		"✓ Review fulfillment staffing"
	return models.NewInsight(text, seasonalOutlook)
}

func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func trendStrength(trendPct float64) string {
	switch abs := math.Abs(trendPct); {
	case abs > 15:
		return "Strong"
	case abs > 5:
		return "Moderate"
	default:
		return "Stable"
	}
}

func direction(trend float64) string {
	switch {
	case trend > 0:
		return "upward"
	case trend < 0:
		return "downward"
	default:
		return "stable"
	}
}

func recommendation(trend float64) string {
	switch {
	case trend > 5:
		return "Increase inventory by 15-20% ahead of the rise"
	case math.Abs(trend) < 5:
		return "Maintain current inventory levels"
	default:
		return "Consider trimming inventory"
	}
}

func growthPriority(growth float64) string {
	switch {
	case growth > 10:
		return "High"
	case growth > 5:
		return "Medium"
	default:
		return "Normal"
	}
}
