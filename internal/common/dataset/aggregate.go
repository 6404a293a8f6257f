package dataset

import (
	"math"
	"sort"
)

// Stats summarises one numeric series. Std is the sample standard deviation
// and is 0 for fewer than two values.
type Stats struct {
	Count int
	Sum   float64
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

func Describe(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Sum / float64(s.Count)
	s.Std = Std(values)
	return s
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std is the sample standard deviation (n-1 denominator).
func Std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// Median averages the two middle values for even lengths.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// SafeDiv returns 0 instead of NaN or Inf.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Finite maps NaN and Inf to 0 so results always marshal to JSON.
func Finite(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return v
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round rounds to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return Finite(math.Round(v*p) / p)
}

// Group is one key of a group-by with the numeric columns it collected.
// Size counts every row with the key, numeric or not.
type Group struct {
	Key    string
	Size   int
	Values map[string][]float64
}

// Stats describes one collected column of the group.
func (g Group) Stats(column string) Stats {
	return Describe(g.Values[column])
}

// GroupBy buckets rows by the key column, collecting the numeric cells of each
// value column. Groups come back in first-seen order. Rows with a blank key
// are dropped; non-numeric cells are skipped per column.
func GroupBy(t *Table, key string, columns ...string) ([]Group, error) {
	keyIdx, err := t.mustIndex(key)
	if err != nil {
		return nil, err
	}
	colIdx := make([]int, len(columns))
	for i, c := range columns {
		if colIdx[i], err = t.mustIndex(c); err != nil {
			return nil, err
		}
	}

	index := make(map[string]int)
	var groups []Group
	for _, row := range t.Rows {
		k := row[keyIdx]
		if k == "" {
			continue
		}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, Group{Key: k, Values: make(map[string][]float64, len(columns))})
		}
		groups[gi].Size++
		for i, c := range columns {
			if v, ok := ParseFloat(row[colIdx[i]]); ok {
				groups[gi].Values[c] = append(groups[gi].Values[c], v)
			}
		}
	}
	return groups, nil
}
