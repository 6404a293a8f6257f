// internal/models/params.go
package models

import "strings"

// Quarter is a calendar quarter label.
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

var quarterMonths = map[Quarter][]int{
	Q1: {1, 2, 3},
	Q2: {4, 5, 6},
	Q3: {7, 8, 9},
	Q4: {10, 11, 12},
}

// ParseQuarter accepts "q1".."q4" in any case.
func ParseQuarter(s string) (Quarter, bool) {
	q := Quarter(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := quarterMonths[q]; !ok {
		return "", false
	}
	return q, true
}

// QuarterMonths returns a fresh copy of the month numbers covered by q.
func QuarterMonths(q Quarter) []int {
	months, ok := quarterMonths[q]
	if !ok {
		return nil
	}
	out := make([]int, len(months))
	copy(out, months)
	return out
}

// ParamSet holds the optional parameters recognised in a question.
// A nil field means the parameter was not present.
type ParamSet struct {
	Quarter     *Quarter `json:"quarter,omitempty"`
	Months      []int    `json:"months,omitempty"`
	SurgePct    *float64 `json:"surge_pct,omitempty"`
	Days        *int     `json:"days,omitempty"`
	TargetMonth *int     `json:"target_month,omitempty"`
	Timeframe   *string  `json:"timeframe,omitempty"`
}

// SetQuarter sets the quarter together with its month window.
func (p *ParamSet) SetQuarter(q Quarter) {
	p.Quarter = &q
	p.Months = QuarterMonths(q)
}

// IsEmpty reports whether no parameter was recognised.
func (p ParamSet) IsEmpty() bool {
	return p.Quarter == nil && len(p.Months) == 0 && p.SurgePct == nil &&
		p.Days == nil && p.TargetMonth == nil && p.Timeframe == nil
}

// SurgeOr returns the surge fraction or def when absent.
func (p ParamSet) SurgeOr(def float64) float64 {
	if p.SurgePct == nil {
		return def
	}
	return *p.SurgePct
}

// DaysOr returns the horizon in days or def when absent.
func (p ParamSet) DaysOr(def int) int {
	if p.Days == nil {
		return def
	}
	return *p.Days
}

// MonthsOr returns the month window or def when absent.
func (p ParamSet) MonthsOr(def []int) []int {
	if len(p.Months) == 0 {
		return def
	}
	return p.Months
}

// QuarterIs reports whether the quarter is set and equal to q.
func (p ParamSet) QuarterIs(q Quarter) bool {
	return p.Quarter != nil && *p.Quarter == q
}
