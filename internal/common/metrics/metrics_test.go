package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(QuestionsTotal.WithLabelValues("shipping", "keyword"))
	QuestionsTotal.WithLabelValues("shipping", "keyword").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(QuestionsTotal.WithLabelValues("shipping", "keyword")))

	before = testutil.ToFloat64(FormatterOutcomes.WithLabelValues(OutcomeFallback))
	FormatterOutcomes.WithLabelValues(OutcomeFallback).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(FormatterOutcomes.WithLabelValues(OutcomeFallback)))
}
