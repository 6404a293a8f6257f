package extractparams

import (
	"regexp"
	"strconv"
	"strings"

	"supplychain-insights/internal/models"
)

var (
	percentPattern = regexp.MustCompile(`(\d+)\s*(?:%|percent)`)
	daysPattern    = regexp.MustCompile(`(\d+)\s*days?`)
)

// quarterTriggers is checked in order; Q4 wins when several quarters are named.
var quarterTriggers = []struct {
	quarter  models.Quarter
	keywords []string
}{
	{models.Q4, []string{"q4", "fourth quarter"}},
	{models.Q3, []string{"q3"}},
	{models.Q1, []string{"q1"}},
	{models.Q2, []string{"q2"}},
}

var monthTriggers = []struct {
	keyword string
	month   int
}{
	{"december", 12},
	{"january", 1},
}

// Extract recognises surge percentages, quarters, day horizons and target
// months in question. It is total: unrecognised parameters stay nil.
func Extract(question string) models.ParamSet {
	q := strings.ToLower(question)
	var params models.ParamSet

	if m := percentPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			pct := n / 100
			params.SurgePct = &pct
		}
	}

	for _, trigger := range quarterTriggers {
		if containsAny(q, trigger.keywords) {
			params.SetQuarter(trigger.quarter)
			break
		}
	}

	if m := daysPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			params.Days = &n
		}
	}

	for _, trigger := range monthTriggers {
		if strings.Contains(q, trigger.keyword) {
			month := trigger.month
			params.TargetMonth = &month
			break
		}
	}

	return params
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
