package predictor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
)

// Registry loads each predictor at most once and keeps it for the life of the
// process. Concurrent first requests for the same name share one load. Failed
// loads are not remembered, so the next request retries.
type Registry struct {
	loader Loader
	logger logger.Logger

	mu     sync.RWMutex
	loaded map[string]Predictor
	group  singleflight.Group
}

func NewRegistry(loader Loader, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Registry{
		loader: loader,
		logger: log,
		loaded: make(map[string]Predictor),
	}
}

func (r *Registry) Get(ctx context.Context, name string) (Predictor, error) {
	r.mu.RLock()
	p, ok := r.loaded[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err, _ := r.group.Do(name, func() (interface{}, error) {
		r.mu.RLock()
		p, ok := r.loaded[name]
		r.mu.RUnlock()
		if ok {
			return p, nil
		}

		p, err := r.loader.Load(ctx, name)
		if err != nil {
			metrics.PredictorLoads.WithLabelValues(name, "error").Inc()
			r.logger.Warn("Predictor load failed", map[string]interface{}{
				"model": name,
				"error": err.Error(),
			})
			return nil, err
		}

		r.mu.Lock()
		r.loaded[name] = p
		r.mu.Unlock()

		metrics.PredictorLoads.WithLabelValues(name, "ok").Inc()
		r.logger.Info("Predictor loaded", map[string]interface{}{"model": name})
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Predictor), nil
}

// GetFirst returns the first predictor in names that loads, along with its
// name. If none load, the error of the last attempt is returned.
func (r *Registry) GetFirst(ctx context.Context, names ...string) (Predictor, string, error) {
	if len(names) == 0 {
		return nil, "", fmt.Errorf("%w: no candidates", ErrModelNotFound)
	}

	var lastErr error
	for _, name := range names {
		p, err := r.Get(ctx, name)
		if err == nil {
			return p, name, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// Loaded lists the names of predictors currently held, sorted.
func (r *Registry) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.loaded))
	for name := range r.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Warm tries to load every name and returns how many succeeded.
func (r *Registry) Warm(ctx context.Context, names ...string) int {
	ok := 0
	for _, name := range names {
		if _, err := r.Get(ctx, name); err == nil {
			ok++
		} else if !errors.Is(err, ErrModelNotFound) {
			r.logger.Error("Predictor warmup failed", map[string]interface{}{"model": name, "error": err.Error()})
		}
	}
	return ok
}
