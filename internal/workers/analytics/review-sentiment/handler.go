package reviewsentiment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"supplychain-insights/internal/common/analytics"
	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/sentiment"
	"supplychain-insights/internal/models"
)

const (
	Intent     = models.IntentSentiment
	ErrorTitle = "Sentiment Analysis Error"
)

type Handler struct {
	config *Config
	scorer sentiment.Scorer
	data   analytics.DataLoader
	logger logger.Logger
}

func NewHandler(config *Config, scorer sentiment.Scorer, data analytics.DataLoader, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if scorer == nil {
		scorer = sentiment.NewLexiconScorer()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config: config,
		scorer: scorer,
		data:   data,
		logger: log.WithFields(map[string]interface{}{"intent": Intent}),
	}
}

// Analyze scores review text and, when the dataset carries ratings, breaks
// them down into promoters and detractors.
func (h *Handler) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	name := h.config.ReviewsDataset
	table, err := analytics.LoadTable(ctx, h.data, name)
	if err != nil {
		return nil, err
	}

	texts, err := table.Column(textColumn)
	if err != nil {
		return nil, analytics.DatasetError(name, err)
	}

	var insights []models.Insight
	if scores := h.score(analytics.Top(texts, h.config.SampleSize)); len(scores) > 0 {
		insights = append(insights, sentimentInsight(scores))
	}

	if !table.HasColumn(ratingColumn) {
		return insights, nil
	}
	ratings, err := table.Floats(ratingColumn)
	if err != nil {
		return insights, analytics.DatasetError(name, err)
	}

	breakdown := ratingBreakdown(ratings, table.Len())
	insights = append(insights, ratingInsight(breakdown, table.Len()))
	if breakdown.LowRatings > 0 {
		insights = append(insights, criticalInsight(breakdown))
	}
	return insights, nil
}

func (h *Handler) score(texts []string) []sentiment.Scores {
	scores := make([]sentiment.Scores, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		scores = append(scores, h.scorer.Score(t))
	}
	h.logger.Debug("reviews scored", map[string]interface{}{"count": len(scores)})
	return scores
}

func sentimentInsight(scores []sentiment.Scores) models.Insight {
	var compound float64
	counts := map[string]int{}
	for _, s := range scores {
		compound += s.Compound
		counts[sentiment.Label(s.Compound)]++
	}
	n := float64(len(scores))
	compound /= n

	pct := func(label string) float64 { return float64(counts[label]) / n * 100 }

	t := toneNeutral
	switch sentiment.Label(compound) {
	case sentiment.LabelPositive:
		t = tonePositive
	case sentiment.LabelNegative:
		t = toneNegative
	}

	var b strings.Builder
	b.WriteString("**💬 Customer Sentiment**\n\n")
	fmt.Fprintf(&b, "**Overall:** %s %s (%s)\n", t.Overall, t.Emoji, t.Status)
	fmt.Fprintf(&b, "• Sentiment score: **%.3f** (-1 to +1)\n", compound)
	fmt.Fprintf(&b, "• Reviews analysed: **%d**\n\n", len(scores))
	b.WriteString("**Breakdown:**\n")
	fmt.Fprintf(&b, "• 😊 Positive: **%.1f%%** (%d reviews)\n", pct(sentiment.LabelPositive), counts[sentiment.LabelPositive])
	fmt.Fprintf(&b, "• 😐 Neutral: **%.1f%%** (%d reviews)\n", pct(sentiment.LabelNeutral), counts[sentiment.LabelNeutral])
	fmt.Fprintf(&b, "• 😞 Negative: **%.1f%%** (%d reviews)\n\n", pct(sentiment.LabelNegative), counts[sentiment.LabelNegative])
	fmt.Fprintf(&b, "**Reading:** %s\n\n", t.Reading)
	fmt.Fprintf(&b, "**💡 Next Step:**\n%s", t.Action)

	return models.NewInsight(b.String(), models.SentimentData{
		Overall:       t.Overall,
		Status:        t.Status,
		PositivePct:   dataset.Round(pct(sentiment.LabelPositive), 2),
		NegativePct:   dataset.Round(pct(sentiment.LabelNegative), 2),
		NeutralPct:    dataset.Round(pct(sentiment.LabelNeutral), 2),
		CompoundScore: dataset.Round(compound, 4),
		SampleSize:    len(scores),
	})
}

// ratingBreakdown computes shares over every row, rated or not.
func ratingBreakdown(ratings []float64, rows int) models.RatingBreakdownData {
	d := models.RatingBreakdownData{RatingDistribution: map[string]int{}}
	for _, r := range ratings {
		switch {
		case r >= 4:
			d.HighRatings++
		case r <= 2:
			d.LowRatings++
		}
		d.RatingDistribution[strconv.FormatFloat(r, 'f', -1, 64)]++
	}

	avg := dataset.Mean(ratings)
	d.AvgRating = dataset.Round(avg, 2)
	d.Health = ratingHealth(avg)
	high := dataset.SafeDiv(float64(d.HighRatings), float64(rows)) * 100
	low := dataset.SafeDiv(float64(d.LowRatings), float64(rows)) * 100
	d.HighRatingPct = dataset.Round(high, 2)
	d.LowRatingPct = dataset.Round(low, 2)
	d.NPS = dataset.Round(high-low, 2)
	return d
}

func ratingHealth(avg float64) string {
	switch {
	case avg >= 4:
		return HealthExcellent
	case avg >= 3.5:
		return HealthGood
	case avg >= 3:
		return HealthFair
	default:
		return HealthPoor
	}
}

func ratingInsight(d models.RatingBreakdownData, rows int) models.Insight {
	keys := make([]string, 0, len(d.RatingDistribution))
	for k := range d.RatingDistribution {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseFloat(keys[i], 64)
		b, _ := strconv.ParseFloat(keys[j], 64)
		return a > b
	})

	var b strings.Builder
	b.WriteString("**⭐ Ratings**\n\n")
	fmt.Fprintf(&b, "**Average: %.2f/5.0** - %s\n\n", d.AvgRating, d.Health)
	b.WriteString("**Distribution:**\n")
	for _, k := range keys {
		v, _ := strconv.ParseFloat(k, 64)
		count := d.RatingDistribution[k]
		stars := strings.Repeat("⭐", int(math.Max(0, math.Floor(v))))
		fmt.Fprintf(&b, "%s (%s-star): **%d** reviews (%.1f%%)\n", stars, k,
			count, dataset.SafeDiv(float64(count), float64(rows))*100)
	}
	b.WriteString("\n**Key Metrics:**\n")
	fmt.Fprintf(&b, "• Promoters (4-5 ⭐): **%.1f%%** (%d customers)\n", d.HighRatingPct, d.HighRatings)
	fmt.Fprintf(&b, "• Detractors (1-2 ⭐): **%.1f%%** (%d customers)\n", d.LowRatingPct, d.LowRatings)
	fmt.Fprintf(&b, "• Net Promoter Score: **%.1f**\n\n", d.NPS)
	fmt.Fprintf(&b, "**Action:** %s", ratingActions[d.Health])

	return models.NewInsight(b.String(), d)
}

func criticalInsight(d models.RatingBreakdownData) models.Insight {
	text := "**🚨 Critical Issues**\n\n" +
		fmt.Sprintf("• Low ratings: **%d** reviews (%.1f%%)\n", d.LowRatings, d.LowRatingPct) +
		fmt.Sprintf("• Likely dissatisfied customers: **%d** (about 10x the reviewers)\n", d.LowRatings*10) +
		fmt.Sprintf("• Revenue at risk: **%s**\n\n", analytics.Rupees(float64(d.LowRatings)*5000)) +
		"**Priority Actions:**\n" +
		"1. Reach out to every 1-2 star reviewer within 24 hours\n" +
		"2. Group negative reviews by complaint\n" +
		"3. Offer service recovery with compensation\n" +
		"4. Track improvement weekly"

	return models.NewInsight(text, models.CriticalIssuesData{
		CriticalCount: d.LowRatings,
		CriticalPct:   d.LowRatingPct,
	})
}
