package sendalert

import (
	"context"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/models"
)

const (
	ChannelSNS = "sns"
	ChannelSES = "ses"
)

// Publisher posts to a notification topic. *aws.SNSClient implements it.
type Publisher interface {
	Publish(ctx context.Context, topicARN, subject, message string) (string, error)
}

// Mailer sends plain-text email. *aws.SESClient implements it.
type Mailer interface {
	SendEmail(ctx context.Context, from string, to []string, subject, body string) (string, error)
}

type ServiceDependencies struct {
	Publisher Publisher
	Mailer    Mailer
	Logger    logger.Logger
}

// Alert is one operational notification derived from an insight.
type Alert struct {
	Kind    models.InsightType `json:"kind"`
	Subject string             `json:"subject"`
	Message string             `json:"message"`
}

// Delivery records where an alert went.
type Delivery struct {
	Alert     Alert  `json:"alert"`
	Channel   string `json:"channel"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}
