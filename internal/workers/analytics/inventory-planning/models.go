package inventoryplanning

const (
	categoryColumn = "category"
	valueColumn    = "order_value_inr"
)

const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
)

// categoryValue is the historical order value of one category.
type categoryValue struct {
	Category string
	Mean     float64
	Total    float64
	Count    int
	Std      float64
}
