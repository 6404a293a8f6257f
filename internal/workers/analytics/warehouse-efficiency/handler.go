package warehouseefficiency

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"supplychain-insights/internal/common/analytics"
	"supplychain-insights/internal/common/dataset"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/models"
)

const (
	Intent     = models.IntentWarehouse
	ErrorTitle = "Warehouse Analysis Error"
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

// Analyze scores each warehouse on processing time and cost against the
// network and prices the gap to the efficient half.
func (h *Handler) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	if _, err := h.predictors.Get(ctx, h.config.WarehouseModel); err != nil {
		return nil, analytics.ModelError(h.config.WarehouseModel, err)
	}

	net, err := h.network(ctx)
	if err != nil {
		return nil, err
	}

	timeSavings := 0.0
	if len(net.Inefficient) > 0 {
		timeSavings = meanOf(net.Inefficient, processingTime) - meanOf(net.Efficient, processingTime)
	}

	return []models.Insight{
		h.networkInsight(net, timeSavings),
		h.bestInsight(net),
		financialInsight(net, timeSavings),
	}, nil
}

func (h *Handler) network(ctx context.Context) (network, error) {
	name := h.config.WarehouseDataset
	table, err := analytics.LoadTable(ctx, h.data, name)
	if err != nil {
		return network{}, err
	}
	groups, err := dataset.GroupBy(table, warehouseColumn, processingColumn, costColumn, workforceColumn)
	if err != nil {
		return network{}, analytics.DatasetError(name, err)
	}

	warehouses := make([]models.WarehouseStats, 0, len(groups))
	for _, g := range groups {
		proc := g.Stats(processingColumn)
		cost := g.Stats(costColumn)
		if proc.Count == 0 || cost.Count == 0 {
			continue
		}
		warehouses = append(warehouses, models.WarehouseStats{
			WarehouseID:       g.Key,
			AvgProcessingTime: proc.Mean,
			StdProcessing:     proc.Std,
			MinProcessing:     proc.Min,
			MaxProcessing:     proc.Max,
			AvgCost:           cost.Mean,
			TotalCost:         cost.Sum,
			AvgWorkforce:      g.Stats(workforceColumn).Mean,
		})
	}
	if len(warehouses) == 0 {
		return network{}, errs.NewAnalysisFailedError("Warehouse efficiency", fmt.Errorf("no processing data in %s", name))
	}

	net := network{
		AvgTime:    meanOf(warehouses, processingTime),
		AvgCost:    meanOf(warehouses, avgCost),
		Operations: table.Len(),
	}
	times := make([]float64, len(warehouses))
	for i := range warehouses {
		w := &warehouses[i]
		w.EfficiencyScore = dataset.SafeDiv(net.AvgTime, w.AvgProcessingTime) * dataset.SafeDiv(net.AvgCost, w.AvgCost)
		w.TimeVsAvg = dataset.SafeDiv(w.AvgProcessingTime-net.AvgTime, net.AvgTime) * 100
		w.CostVsAvg = dataset.SafeDiv(w.AvgCost-net.AvgCost, net.AvgCost) * 100
		times[i] = w.AvgProcessingTime
	}
	sort.SliceStable(warehouses, func(i, j int) bool {
		return warehouses[i].EfficiencyScore > warehouses[j].EfficiencyScore
	})

	median := dataset.Median(times)
	for _, w := range warehouses {
		if w.AvgProcessingTime > median {
			net.Inefficient = append(net.Inefficient, w)
		} else {
			net.Efficient = append(net.Efficient, w)
		}
	}
	sort.SliceStable(net.Inefficient, func(i, j int) bool {
		return net.Inefficient[i].AvgProcessingTime > net.Inefficient[j].AvgProcessingTime
	})
	net.Warehouses = warehouses
	return net, nil
}

func round(in []models.WarehouseStats) []models.WarehouseStats {
	out := make([]models.WarehouseStats, len(in))
	for i, w := range in {
		out[i] = models.WarehouseStats{
			WarehouseID:       w.WarehouseID,
			AvgProcessingTime: dataset.Round(w.AvgProcessingTime, 2),
			StdProcessing:     dataset.Round(w.StdProcessing, 2),
			MinProcessing:     dataset.Round(w.MinProcessing, 2),
			MaxProcessing:     dataset.Round(w.MaxProcessing, 2),
			AvgCost:           dataset.Round(w.AvgCost, 2),
			TotalCost:         dataset.Round(w.TotalCost, 2),
			AvgWorkforce:      dataset.Round(w.AvgWorkforce, 2),
			EfficiencyScore:   dataset.Round(w.EfficiencyScore, 3),
			TimeVsAvg:         dataset.Round(w.TimeVsAvg, 2),
			CostVsAvg:         dataset.Round(w.CostVsAvg, 2),
		}
	}
	return out
}

func (h *Handler) networkInsight(net network, timeSavings float64) models.Insight {
	inefficientPct := float64(len(net.Inefficient)) / float64(len(net.Warehouses)) * 100

	var b strings.Builder
	b.WriteString("**🏭 Warehouse Network**\n\n")
	b.WriteString("**Overview:**\n")
	fmt.Fprintf(&b, "• Warehouses: **%d**\n", len(net.Warehouses))
	fmt.Fprintf(&b, "• Avg processing time: **%.1f hours**\n", net.AvgTime)
	fmt.Fprintf(&b, "• Avg cost: **%s** per operation\n", analytics.Rupees(net.AvgCost))
	fmt.Fprintf(&b, "• Slower than median: **%d** (%.0f%%)\n\n", len(net.Inefficient), inefficientPct)

	if len(net.Inefficient) > 0 {
		b.WriteString("**⚠️ Slowest Warehouses:**\n")
		for i, w := range analytics.Top(net.Inefficient, h.config.ListedWarehouses) {
			fmt.Fprintf(&b, "**%d. %s**\n", i+1, w.WarehouseID)
			fmt.Fprintf(&b, "   • Processing: **%.1f hrs** (%+.0f%% vs avg)\n", w.AvgProcessingTime, w.TimeVsAvg)
			fmt.Fprintf(&b, "   • Spread: ±%.1f hrs\n", w.StdProcessing)
			fmt.Fprintf(&b, "   • Cost: **%s** (%+.0f%% vs avg)\n", analytics.Rupees(w.AvgCost), w.CostVsAvg)
			fmt.Fprintf(&b, "   • Efficiency score: %.2f\n", w.EfficiencyScore)
		}
		b.WriteString("\n")
	}

	b.WriteString("**💡 Recommendations:**\n")
	fmt.Fprintf(&b, "✓ Time to recover: **%.1f hours** per operation\n", timeSavings)
	b.WriteString("✓ Copy practices from the fastest sites\n" +
		"✓ Rebalance workforce across facilities\n" +
		"✓ Automate repetitive handling steps")

	return models.NewInsight(b.String(), models.WarehouseData{
		Inefficient:      round(net.Inefficient),
		WarehouseCount:   len(net.Warehouses),
		NetworkAvgTime:   dataset.Round(net.AvgTime, 2),
		NetworkAvgCost:   dataset.Round(net.AvgCost, 2),
		PotentialSavings: dataset.Round(timeSavings, 2),
	})
}

func (h *Handler) bestInsight(net network) models.Insight {
	top := round(analytics.Top(net.Efficient, h.config.ListedWarehouses))

	var b strings.Builder
	b.WriteString("**⭐ Most Efficient Warehouses**\n\n")
	for i, w := range top {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, w.WarehouseID)
		fmt.Fprintf(&b, "   • Processing: **%.1f hrs** (%.0f%% %s than avg)\n",
			w.AvgProcessingTime, math.Abs(w.TimeVsAvg), fasterOrSlower(w.TimeVsAvg))
		fmt.Fprintf(&b, "   • Efficiency score: **%.2f**\n", w.EfficiencyScore)
		fmt.Fprintf(&b, "   • Cost: %s per operation\n", analytics.Rupees(w.AvgCost))
		fmt.Fprintf(&b, "   • Workforce: %.0f\n", w.AvgWorkforce)
	}
	b.WriteString("\n**What to replicate:** floor layout, shift planning and inventory tracking")

	return models.NewInsight(b.String(), models.WarehouseBestData(top))
}

func fasterOrSlower(timeVsAvg float64) string {
	if timeVsAvg > 0 {
		return "slower"
	}
	return "faster"
}

func financialInsight(net network, timeSavings float64) models.Insight {
	total := 0.0
	for _, w := range net.Warehouses {
		total += totalCost(w)
	}
	ops := float64(net.Operations)
	optimal := meanOf(net.Efficient, avgCost) * ops
	savings := total - optimal
	savingsPct := dataset.SafeDiv(savings, total) * 100
	hours := timeSavings * ops

	var b strings.Builder
	b.WriteString("**📊 Financial Impact**\n\n")
	b.WriteString("**Today:**\n")
	fmt.Fprintf(&b, "• Operations: **%d**\n", net.Operations)
	fmt.Fprintf(&b, "• Operating cost: **%s**\n", analytics.Rupees(total))
	fmt.Fprintf(&b, "• Avg cost per operation: **%s**\n\n", analytics.Rupees(net.AvgCost))
	b.WriteString("**If every site matched the efficient half:**\n")
	fmt.Fprintf(&b, "  → Savings: **%s** (%.1f%%)\n", analytics.Rupees(savings), savingsPct)
	fmt.Fprintf(&b, "  → Time saved: **%.0f hours** across the network\n\n", hours)
	b.WriteString("**Next Steps:**\n" +
		"1. Audit the slowest facilities\n" +
		"2. Roll out practices from the fastest sites\n" +
		"3. Prioritise automation where volume is highest\n" +
		"4. Tie incentives to processing time")

	return models.NewInsight(b.String(), models.WarehouseFinancialData{
		TotalOperations:  net.Operations,
		TotalCost:        dataset.Round(total, 2),
		PotentialSavings: dataset.Round(savings, 2),
		SavingsPct:       dataset.Round(savingsPct, 2),
		TimeSavings:      dataset.Round(hours, 2),
	})
}
