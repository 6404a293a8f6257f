package llm

import (
	"context"
	"time"

	"supplychain-insights/internal/common/logger"
)

const probePrompt = "Test"

// Probe sends a short prompt to each candidate model in turn and returns the
// first generator that answers.
func Probe(ctx context.Context, base Generator, models []string, timeout time.Duration, log logger.Logger) (Generator, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	switcher, ok := base.(ModelSwitcher)
	if !ok {
		models = []string{base.Model()}
	}

	for _, model := range models {
		candidate := base
		if ok {
			candidate = switcher.WithModel(model)
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		_, err := candidate.Generate(probeCtx, probePrompt, nil)
		cancel()

		if err != nil {
			log.Warn("model probe failed", map[string]interface{}{
				"provider": candidate.Name(),
				"model":    model,
				"error":    truncate(err.Error(), 100),
			})
			continue
		}

		log.Info("generative service enabled", map[string]interface{}{
			"provider": candidate.Name(),
			"model":    candidate.Model(),
		})
		return candidate, nil
	}

	return nil, ErrNoWorkingModel
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
