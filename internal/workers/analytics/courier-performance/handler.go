package courierperformance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"supplychain-insights/internal/common/analytics"
	"supplychain-insights/internal/common/dataset"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/models"
)

const (
	Intent     = models.IntentShipping
	ErrorTitle = "Shipping Analysis Error"
)

type Handler struct {
	config     *Config
	predictors analytics.ModelProvider
	data       analytics.DataLoader
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
		logger:     log.WithFields(map[string]interface{}{"intent": Intent}),
	}
}

// Analyze ranks courier partners by delivery time against the network and
// estimates what moving volume to the fastest partners would save.
func (h *Handler) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	if _, err := h.predictors.Get(ctx, h.config.TransportModel); err != nil {
		return nil, analytics.ModelError(h.config.TransportModel, err)
	}

	net, err := h.network(ctx)
	if err != nil {
		return nil, err
	}

	delayImpact := float64(len(net.Problem)) / float64(len(net.Couriers)) * 100
	h.logger.Debug("courier network analysed", map[string]interface{}{
		"couriers": len(net.Couriers),
		"problem":  len(net.Problem),
	})

	return []models.Insight{
		h.shippingInsight(net, delayImpact),
		h.bestInsight(net),
		h.impactInsight(net, delayImpact),
	}, nil
}

func (h *Handler) network(ctx context.Context) (network, error) {
	name := h.config.TransportDataset
	table, err := analytics.LoadTable(ctx, h.data, name)
	if err != nil {
		return network{}, err
	}
	groups, err := dataset.GroupBy(table, courierColumn, deliveryColumn, fuelColumn, distanceColumn)
	if err != nil {
		return network{}, analytics.DatasetError(name, err)
	}

	couriers := make([]models.CourierStats, 0, len(groups))
	for _, g := range groups {
		delivery := g.Stats(deliveryColumn)
		if delivery.Count == 0 {
			continue
		}
		fuel := g.Stats(fuelColumn)
		couriers = append(couriers, models.CourierStats{
			Courier:         g.Key,
			AvgDeliveryTime: delivery.Mean,
			StdDeliveryTime: delivery.Std,
			MinDelivery:     delivery.Min,
			MaxDelivery:     delivery.Max,
			AvgFuelCost:     fuel.Mean,
			TotalFuelCost:   fuel.Sum,
			AvgDistance:     g.Stats(distanceColumn).Mean,
			Reliability:     1 / (1 + delivery.Std),
		})
	}
	if len(couriers) == 0 {
		return network{}, errs.NewAnalysisFailedError("Courier performance", fmt.Errorf("no delivery times in %s", name))
	}

	avg := meanOf(couriers, deliveryTime)
	times := make([]float64, len(couriers))
	for i := range couriers {
		couriers[i].PerformanceVsAvg = dataset.SafeDiv(avg-couriers[i].AvgDeliveryTime, avg) * 100
		times[i] = couriers[i].AvgDeliveryTime
	}
	median := dataset.Median(times)

	var problem []models.CourierStats
	for _, c := range couriers {
		if c.AvgDeliveryTime > median {
			problem = append(problem, c)
		}
	}
	sort.SliceStable(problem, func(i, j int) bool { return problem[i].AvgDeliveryTime > problem[j].AvgDeliveryTime })

	best := append([]models.CourierStats(nil), couriers...)
	sort.SliceStable(best, func(i, j int) bool { return best[i].AvgDeliveryTime < best[j].AvgDeliveryTime })

	return network{
		Couriers: couriers,
		Average:  avg,
		Problem:  roundAll(problem),
		Best:     roundAll(analytics.Top(best, h.config.ListedCouriers)),
	}, nil
}

func roundAll(in []models.CourierStats) []models.CourierStats {
	out := make([]models.CourierStats, len(in))
	for i, c := range in {
		out[i] = models.CourierStats{
			Courier:          c.Courier,
			AvgDeliveryTime:  dataset.Round(c.AvgDeliveryTime, 2),
			StdDeliveryTime:  dataset.Round(c.StdDeliveryTime, 2),
			MinDelivery:      dataset.Round(c.MinDelivery, 2),
			MaxDelivery:      dataset.Round(c.MaxDelivery, 2),
			AvgFuelCost:      dataset.Round(c.AvgFuelCost, 2),
			TotalFuelCost:    dataset.Round(c.TotalFuelCost, 2),
			AvgDistance:      dataset.Round(c.AvgDistance, 2),
			PerformanceVsAvg: dataset.Round(c.PerformanceVsAvg, 2),
			Reliability:      dataset.Round(c.Reliability, 3),
		}
	}
	return out
}

func (h *Handler) shippingInsight(net network, delayImpact float64) models.Insight {
	var b strings.Builder
	b.WriteString("**🚚 Courier Performance**\n\n")
	b.WriteString("**Network:**\n")
	fmt.Fprintf(&b, "• Courier partners: **%d**\n", len(net.Couriers))
	fmt.Fprintf(&b, "• Average delivery time: **%.1f days**\n", net.Average)
	fmt.Fprintf(&b, "• Partners slower than median: **%d** (%.0f%%)\n\n", len(net.Problem), delayImpact)

	if len(net.Problem) > 0 {
		b.WriteString("**⚠️ Slowest Partners:**\n")
		for i, c := range analytics.Top(net.Problem, h.config.ListedCouriers) {
			fmt.Fprintf(&b, "**%d. %s**\n", i+1, c.Courier)
			fmt.Fprintf(&b, "   • Avg delivery: **%.1f days** (%+.0f%% vs network)\n", c.AvgDeliveryTime, c.PerformanceVsAvg)
			fmt.Fprintf(&b, "   • Spread: ±%.1f days\n", c.StdDeliveryTime)
			fmt.Fprintf(&b, "   • Range: %.0f-%.0f days\n", c.MinDelivery, c.MaxDelivery)
			fmt.Fprintf(&b, "   • Avg fuel cost: %s\n", analytics.Rupees(c.AvgFuelCost))
		}
		b.WriteString("\n")
	}

	b.WriteString("**💡 Recommendations:**\n" +
		"✓ Shift **30-40%** of volume to the fastest partners\n" +
		"✓ Renegotiate SLAs with slow partners\n" +
		"✓ Review courier performance weekly\n" +
		"✓ Add penalty clauses for late deliveries")

	return models.NewInsight(b.String(), models.ShippingData{
		ProblemCouriers: net.Problem,
		CourierCount:    len(net.Couriers),
		NetworkAvg:      dataset.Round(net.Average, 2),
		DelayImpactPct:  dataset.Round(delayImpact, 2),
	})
}

func (h *Handler) bestInsight(net network) models.Insight {
	var b strings.Builder
	b.WriteString("**⭐ Fastest Couriers**\n\n")
	for i, c := range net.Best {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, c.Courier)
		fmt.Fprintf(&b, "   • Delivery time: **%.1f days** (%+.0f%% vs network)\n", c.AvgDeliveryTime, c.PerformanceVsAvg)
		fmt.Fprintf(&b, "   • Reliability: %.2f\n", c.Reliability)
		fmt.Fprintf(&b, "   • Fuel cost: %s per shipment\n", analytics.Rupees(c.AvgFuelCost))
	}
	b.WriteString("\n**Strategy:** Route critical shipments through these partners")

	return models.NewInsight(b.String(), models.BestCouriersData(net.Best))
}

func (h *Handler) impactInsight(net network, delayImpact float64) models.Insight {
	timeSavings := 0.0
	costSavings := 0.0
	if len(net.Problem) > 0 {
		timeSavings = meanOf(net.Problem, deliveryTime) - meanOf(net.Best, deliveryTime)
		costSavings = (meanOf(net.Problem, fuelCost) - meanOf(net.Best, fuelCost)) * h.config.CostSavingsFactor
	}

	var b strings.Builder
	b.WriteString("**📊 Business Impact**\n\n")
	fmt.Fprintf(&b, "• Shipments exposed to delays: **%.0f%%**\n", delayImpact)
	b.WriteString("• Expected complaint increase: **+15-25%**\n\n")
	b.WriteString("**Opportunities:**\n")
	fmt.Fprintf(&b, "✓ Move to the fastest partners → save **%.1f days** per shipment\n", timeSavings)
	fmt.Fprintf(&b, "✓ Narrow fuel cost gaps → save about **%s**/month\n", analytics.Rupees(costSavings))
	b.WriteString("✓ Lift customer satisfaction by **10-15 points**")

	return models.NewInsight(b.String(), models.ShippingImpactData{
		DelayImpactPct: dataset.Round(delayImpact, 2),
		TimeSavings:    dataset.Round(timeSavings, 2),
		CostSavings:    dataset.Round(costSavings, 2),
	})
}
