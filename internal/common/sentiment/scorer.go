package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Scores are polarity proportions plus a normalised compound in [-1, 1].
type Scores struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

type Scorer interface {
	Score(text string) Scores
}

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"

	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Label buckets a compound score.
func Label(compound float64) string {
	switch {
	case compound >= PositiveThreshold:
		return LabelPositive
	case compound <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// LexiconScorer is a rule-based scorer: lexicon valence, booster words,
// negation within the three preceding tokens, "but" contrast and
// exclamation emphasis.
type LexiconScorer struct{}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

func (LexiconScorer) Score(text string) Scores {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Scores{Neutral: 1}
	}

	sentiments := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, ok := valence[tok]
		if !ok {
			continue
		}
		for back := 1; back <= 3 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if b, ok := boosters[prev]; ok {
				scale := 1.0
				if back == 2 {
					scale = 0.95
				} else if back == 3 {
					scale = 0.9
				}
				if v < 0 {
					v -= b * scale
				} else {
					v += b * scale
				}
			}
			if negations[prev] {
				v *= negationScalar
			}
		}
		sentiments[i] = v
	}

	applyBut(tokens, sentiments)

	sum := 0.0
	for _, s := range sentiments {
		sum += s
	}
	if sum != 0 {
		emphasis := math.Min(float64(strings.Count(text, "!")), 4) * 0.292
		if sum > 0 {
			sum += emphasis
		} else {
			sum -= emphasis
		}
	}

	var pos, neg, neu float64
	for _, s := range sentiments {
		switch {
		case s > 0:
			pos += s + 1
		case s < 0:
			neg += s - 1
		default:
			neu++
		}
	}
	total := pos + math.Abs(neg) + neu

	return Scores{
		Positive: round3(pos / total),
		Negative: round3(math.Abs(neg) / total),
		Neutral:  round3(neu / total),
		Compound: round4(normalize(sum)),
	}
}

// applyBut halves sentiment before the first "but" and boosts it after.
func applyBut(tokens []string, sentiments []float64) {
	for i, tok := range tokens {
		if tok != "but" {
			continue
		}
		for j := range sentiments {
			if j < i {
				sentiments[j] *= 0.5
			} else if j > i {
				sentiments[j] *= 1.5
			}
		}
		return
	}
}

func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+15)
	return math.Max(-1, math.Min(1, n))
}

// tokenize lowercases, folds apostrophes ("don't" -> "dont") and splits on
// anything that is not a letter or digit.
func tokenize(text string) []string {
	text = strings.ToLower(strings.NewReplacer("'", "", "’", "").Replace(text))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
