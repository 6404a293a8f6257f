package sendalert

import (
	"context"
	"fmt"
	"strings"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
	"supplychain-insights/internal/models"
)

// Service turns risk insights into operational alerts. Delivery is best
// effort: failures are logged and counted, never returned.
type Service struct {
	config    *Config
	publisher Publisher
	mailer    Mailer
	logger    logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:    config,
		publisher: deps.Publisher,
		mailer:    deps.Mailer,
		logger:    log.WithFields(map[string]interface{}{"stage": "alerts"}),
	}
}

// Notify sends an alert for each qualifying insight and reports every
// delivery attempt.
func (s *Service) Notify(ctx context.Context, question string, insights []models.Insight) []Delivery {
	if s == nil || !s.config.Enabled {
		return nil
	}

	alerts := s.Collect(question, insights)
	if len(alerts) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var deliveries []Delivery
	for _, a := range alerts {
		if s.publisher != nil {
			id, err := s.publisher.Publish(ctx, s.config.TopicARN, a.Subject, a.Message)
			deliveries = append(deliveries, s.record(a, ChannelSNS, id, err))
		}
		if s.mailer != nil && s.config.EmailEnabled {
			id, err := s.mailer.SendEmail(ctx, s.config.EmailFrom, s.config.EmailTo, a.Subject, a.Message)
			deliveries = append(deliveries, s.record(a, ChannelSES, id, err))
		}
	}
	return deliveries
}

// Collect selects the insights worth alerting on.
func (s *Service) Collect(question string, insights []models.Insight) []Alert {
	var alerts []Alert
	for _, in := range insights {
		switch data := in.Data.(type) {
		case models.StockoutRiskData:
			if data.RiskCount < s.config.MinRiskCount {
				continue
			}
			alerts = append(alerts, Alert{
				Kind:    in.Type,
				Subject: fmt.Sprintf("Stockout risk: %d categories", data.RiskCount),
				Message: message(question, fmt.Sprintf("Categories at elevated stockout risk: %s",
					strings.Join(data.HighRiskCategories, ", "))),
			})
		case models.CriticalIssuesData:
			if data.CriticalCount == 0 {
				continue
			}
			alerts = append(alerts, Alert{
				Kind:    in.Type,
				Subject: fmt.Sprintf("Critical reviews: %d low ratings", data.CriticalCount),
				Message: message(question, fmt.Sprintf("%d reviews rated 1-2 stars (%.1f%% of all reviews)",
					data.CriticalCount, data.CriticalPct)),
			})
		}
	}
	return alerts
}

func message(question, body string) string {
	return fmt.Sprintf("%s\n\nRaised while answering: %q", body, question)
}

func (s *Service) record(a Alert, channel, id string, err error) Delivery {
	d := Delivery{Alert: a, Channel: channel, MessageID: id}
	if err != nil {
		d.Error = err.Error()
		metrics.AlertsSent.WithLabelValues(channel, "failed").Inc()
		s.logger.Warn("alert delivery failed", map[string]interface{}{
			"channel": channel,
			"kind":    string(a.Kind),
			"error":   err.Error(),
		})
		return d
	}
	metrics.AlertsSent.WithLabelValues(channel, "sent").Inc()
	s.logger.Info("alert sent", map[string]interface{}{
		"channel":   channel,
		"kind":      string(a.Kind),
		"messageId": id,
	})
	return d
}
