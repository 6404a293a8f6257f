package classifyintent

import (
	"context"
	"errors"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
)

// Resolver turns a question into a Resolution. The primary classifier's
// answer is used as-is when it succeeds; otherwise keyword matching decides.
// Results from the two are never merged.
type Resolver struct {
	primary  Classifier
	fallback KeywordClassifier
	logger   logger.Logger
}

// NewResolver accepts a nil primary, in which case only keywords are used.
func NewResolver(primary Classifier, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Resolver{
		primary: primary,
		logger:  log.WithFields(map[string]interface{}{"component": "intent-resolver"}),
	}
}

func (r *Resolver) Resolve(ctx context.Context, question string) Resolution {
	var reason string

	if r.primary != nil {
		c, err := r.primary.Classify(ctx, question)
		if err == nil && c != nil {
			return r.record(Resolution{Intent: c.Intent, Params: c.Params, Source: c.Source})
		}
		reason = fallbackReason(err)
		metrics.ClassifierFallbacks.WithLabelValues(reason).Inc()
		r.logger.Warn("AI classification failed, falling back to keywords", map[string]interface{}{
			"classifier": r.primary.Name(),
			"reason":     reason,
			"error":      errString(err),
		})
	}

	c, _ := r.fallback.Classify(ctx, question)
	return r.record(Resolution{
		Intent:         c.Intent,
		Params:         c.Params,
		Source:         c.Source,
		FallbackReason: reason,
	})
}

func (r *Resolver) record(res Resolution) Resolution {
	metrics.QuestionsTotal.WithLabelValues(res.Intent.String(), res.Source).Inc()
	r.logger.Info("intent resolved", map[string]interface{}{
		"intent": res.Intent,
		"source": res.Source,
		"params": res.Params,
	})
	return res
}

func fallbackReason(err error) string {
	switch {
	case err == nil:
		return "empty_result"
	case errors.Is(err, ErrAITimeout):
		return "timeout"
	case errors.Is(err, ErrAIResponseTooLarge):
		return "response_too_large"
	case errors.Is(err, ErrAIResponseInvalid):
		return "invalid_response"
	case errors.Is(err, ErrInvalidIntent):
		return "invalid_intent"
	case errors.Is(err, ErrAIUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
