package courierperformance

import "supplychain-insights/internal/models"

const (
	courierColumn  = "courier_partner"
	deliveryColumn = "delivery_time_days"
	fuelColumn     = "fuel_cost_inr"
	distanceColumn = "distance_km"
)

// network is the per-courier view of the transport dataset.
type network struct {
	Couriers []models.CourierStats
	Average  float64
	Problem  []models.CourierStats
	Best     []models.CourierStats
}

func meanOf(couriers []models.CourierStats, field func(models.CourierStats) float64) float64 {
	if len(couriers) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range couriers {
		sum += field(c)
	}
	return sum / float64(len(couriers))
}

func deliveryTime(c models.CourierStats) float64 { return c.AvgDeliveryTime }
func fuelCost(c models.CourierStats) float64     { return c.AvgFuelCost }
