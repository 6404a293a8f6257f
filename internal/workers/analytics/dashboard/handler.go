// Package dashboard computes the KPI summary behind the analytics dashboard.
package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"supplychain-insights/internal/common/analytics"
	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/sentiment"
)

const (
	TopCategories = 10
)

type Service struct {
	data   analytics.DataLoader
	scorer sentiment.Scorer
	clock  func() time.Time
	logger logger.Logger
}

func NewService(data analytics.DataLoader, scorer sentiment.Scorer, log logger.Logger) *Service {
	if scorer == nil {
		scorer = sentiment.NewLexiconScorer()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		data:   data,
		scorer: scorer,
		clock:  time.Now,
		logger: log.WithFields(map[string]interface{}{"component": "dashboard"}),
	}
}

func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Summary loads every dashboard dataset concurrently. It only fails when the
// context is cancelled; a dataset that cannot be loaded is reported in
// Errors and its section is left empty.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		Success:               true,
		OrderValueByCategory:  []CategoryValue{},
		CourierPerformance:    []CourierKPI{},
		WarehouseProcessing:   []WarehouseKPI{},
		SentimentDistribution: map[string]int{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	sections := map[string]func(*dataset.Table) error{
		ordersDataset:    func(t *dataset.Table) error { return s.orders(t, sum) },
		transportDataset: func(t *dataset.Table) error { return s.transport(t, sum) },
		warehouseDataset: func(t *dataset.Table) error { return s.warehouse(t, sum) },
		reviewsDataset:   func(t *dataset.Table) error { return s.reviews(t, sum) },
	}
	for name, fill := range sections {
		name, fill := name, fill
		g.Go(func() error {
			t, err := analytics.LoadTable(gctx, s.data, name)
			if err == nil {
				mu.Lock()
				err = fill(t)
				mu.Unlock()
			}
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("dashboard section unavailable", map[string]interface{}{
					"dataset": name,
					"error":   err.Error(),
				})
				mu.Lock()
				if sum.Errors == nil {
					sum.Errors = make(map[string]string)
				}
				sum.Errors[name] = err.Error()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum.Success = len(sum.Errors) < len(sections)
	sum.Timestamp = s.clock().Format(time.RFC3339Nano)
	return sum, nil
}

func (s *Service) orders(t *dataset.Table, sum *Summary) error {
	values, err := t.Floats("order_value_inr")
	if err != nil {
		return err
	}
	sum.Metrics.TotalOrders = t.Len()
	sum.Metrics.TotalOrderValue = dataset.Round(dataset.Describe(values).Sum, 2)

	groups, err := dataset.GroupBy(t, "category", "order_value_inr")
	if err != nil {
		return err
	}
	for _, g := range groups {
		sum.OrderValueByCategory = append(sum.OrderValueByCategory, CategoryValue{
			Category: g.Key,
			AvgValue: dataset.Round(g.Stats("order_value_inr").Mean, 2),
			Orders:   g.Size,
		})
	}
	sort.SliceStable(sum.OrderValueByCategory, func(i, j int) bool {
		return sum.OrderValueByCategory[i].AvgValue > sum.OrderValueByCategory[j].AvgValue
	})
	sum.OrderValueByCategory = analytics.Top(sum.OrderValueByCategory, TopCategories)
	return nil
}

func (s *Service) transport(t *dataset.Table, sum *Summary) error {
	days, err := t.Floats("delivery_time_days")
	if err != nil {
		return err
	}
	sum.Metrics.TotalRoutes = t.Len()
	sum.Metrics.AvgDeliveryDays = dataset.Round(dataset.Mean(days), 2)

	groups, err := dataset.GroupBy(t, "courier_partner", "delivery_time_days")
	if err != nil {
		return err
	}
	for _, g := range groups {
		sum.CourierPerformance = append(sum.CourierPerformance, CourierKPI{
			Courier:         g.Key,
			AvgDeliveryDays: dataset.Round(g.Stats("delivery_time_days").Mean, 2),
			Shipments:       g.Size,
		})
	}
	sort.SliceStable(sum.CourierPerformance, func(i, j int) bool {
		return sum.CourierPerformance[i].AvgDeliveryDays < sum.CourierPerformance[j].AvgDeliveryDays
	})
	return nil
}

func (s *Service) warehouse(t *dataset.Table, sum *Summary) error {
	hours, err := t.Floats("processing_time_hrs")
	if err != nil {
		return err
	}
	sum.Metrics.AvgProcessingHours = dataset.Round(dataset.Mean(hours), 2)

	groups, err := dataset.GroupBy(t, "warehouse_id", "processing_time_hrs")
	if err != nil {
		return err
	}
	sum.Metrics.TotalWarehouses = len(groups)
	for _, g := range groups {
		sum.WarehouseProcessing = append(sum.WarehouseProcessing, WarehouseKPI{
			Warehouse:          g.Key,
			AvgProcessingHours: dataset.Round(g.Stats("processing_time_hrs").Mean, 2),
			Operations:         g.Size,
		})
	}
	return nil
}

func (s *Service) reviews(t *dataset.Table, sum *Summary) error {
	texts, err := t.Column("review_text")
	if err != nil {
		return err
	}
	sum.Metrics.TotalReviews = t.Len()

	var compound []float64
	for _, text := range texts {
		if text == "" {
			continue
		}
		score := s.scorer.Score(text).Compound
		compound = append(compound, score)
		sum.SentimentDistribution[sentiment.Label(score)]++
	}
	sum.Metrics.AvgSentiment = dataset.Round(dataset.Mean(compound), 3)

	if t.HasColumn("rating") {
		ratings, err := t.Floats("rating")
		if err != nil {
			return err
		}
		sum.Metrics.AvgRating = dataset.Round(dataset.Mean(ratings), 2)
	}
	return nil
}
