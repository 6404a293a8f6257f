package warehouseefficiency

import "supplychain-insights/internal/models"

const (
	warehouseColumn  = "warehouse_id"
	processingColumn = "processing_time_hrs"
	costColumn       = "operational_cost_inr"
	workforceColumn  = "workforce_available"
)

// network splits warehouses at the median processing time.
type network struct {
	Warehouses  []models.WarehouseStats
	AvgTime     float64
	AvgCost     float64
	Inefficient []models.WarehouseStats
	Efficient   []models.WarehouseStats
	Operations  int
}

func meanOf(ws []models.WarehouseStats, field func(models.WarehouseStats) float64) float64 {
	if len(ws) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range ws {
		sum += field(w)
	}
	return sum / float64(len(ws))
}

func processingTime(w models.WarehouseStats) float64 { return w.AvgProcessingTime }
func avgCost(w models.WarehouseStats) float64        { return w.AvgCost }
func totalCost(w models.WarehouseStats) float64      { return w.TotalCost }
