package reviewsentiment

const (
	textColumn   = "review_text"
	ratingColumn = "rating"
)

const (
	StatusHealthy  = "HEALTHY"
	StatusCritical = "CRITICAL"
	StatusAtRisk   = "AT RISK"

	HealthExcellent = "EXCELLENT"
	HealthGood      = "GOOD"
	HealthFair      = "FAIR"
	HealthPoor      = "POOR"
)

// tone is the verdict on the average compound score.
type tone struct {
	Overall string
	Emoji   string
	Status  string
	Reading string
	Action  string
}

var (
	tonePositive = tone{
		Overall: "Positive",
		Emoji:   "✅",
		Status:  StatusHealthy,
		Reading: "Customers are broadly satisfied",
		Action:  "Keep current service standards and find out what drives the praise",
	}
	toneNegative = tone{
		Overall: "Negative",
		Emoji:   "⚠️",
		Status:  StatusCritical,
		Reading: "Dissatisfaction needs attention now",
		Action:  "Investigate the most common complaints and start a service recovery plan",
	}
	toneNeutral = tone{
		Overall: "Neutral",
		Emoji:   "😐",
		Status:  StatusAtRisk,
		Reading: "Sentiment is mixed with room to improve",
		Action:  "Turn neutral experiences into positive ones with targeted service fixes",
	}
)

var ratingActions = map[string]string{
	HealthExcellent: "Protect quality and collect testimonials",
	HealthGood:      "Small improvements will reach excellent",
	HealthFair:      "Service quality needs work",
	HealthPoor:      "Urgent service overhaul needed",
}
