package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconScorer(t *testing.T) {
	s := NewLexiconScorer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "Great product, fast delivery", LabelPositive},
		{"negative", "Terrible packaging and the item was damaged", LabelNegative},
		{"neutral", "The parcel arrived on Tuesday", LabelNeutral},
		{"negated positive", "The product is not good", LabelNegative},
		{"negated negative", "Delivery was not bad", LabelPositive},
		{"contrast", "Packaging was good but the item is broken", LabelNegative},
		{"empty", "", LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.text)
			assert.Equal(t, tt.want, Label(got.Compound), "compound=%v", got.Compound)
			assert.GreaterOrEqual(t, got.Compound, -1.0)
			assert.LessOrEqual(t, got.Compound, 1.0)
		})
	}
}

func TestLexiconScorer_Intensity(t *testing.T) {
	s := NewLexiconScorer()

	plain := s.Score("good delivery").Compound
	boosted := s.Score("very good delivery").Compound
	shouted := s.Score("very good delivery!!!").Compound

	assert.Greater(t, boosted, plain)
	assert.Greater(t, shouted, boosted)
}

func TestLexiconScorer_Proportions(t *testing.T) {
	got := NewLexiconScorer().Score("good phone")
	assert.InDelta(t, 1.0, got.Positive+got.Negative+got.Neutral, 0.002)
	assert.Zero(t, got.Negative)
	assert.Equal(t, Scores{Neutral: 1}, NewLexiconScorer().Score("!!!"))
}

func TestLabelThresholds(t *testing.T) {
	assert.Equal(t, LabelPositive, Label(0.05))
	assert.Equal(t, LabelNegative, Label(-0.05))
	assert.Equal(t, LabelNeutral, Label(0.049))
}
