package buildresponse

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/validation"
	"supplychain-insights/internal/models"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
)

var ErrInvalidEnvelope = errors.New("INVALID_RESPONSE_ENVELOPE")

// Builder assembles the response envelope. Insight order is kept as given.
type Builder struct {
	config    *Config
	clock     func() time.Time
	idGen     func() string
	validator *validation.Validator
	logger    logger.Logger
}

func NewBuilder(config *Config, log logger.Logger) *Builder {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Builder{
		config:    config,
		clock:     time.Now,
		idGen:     uuid.NewString,
		validator: validation.MustValidator(envelopeSchema),
		logger:    log.WithFields(map[string]interface{}{"stage": "build"}),
	}
}

// WithClock replaces the timestamp source.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// WithIDGenerator replaces the request id source.
func (b *Builder) WithIDGenerator(idGen func() string) *Builder {
	b.idGen = idGen
	return b
}

func (b *Builder) Build(question string, res *classifyintent.Resolution, insights []models.Insight) (*models.ChatResponse, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: missing resolution", ErrInvalidEnvelope)
	}
	if insights == nil {
		insights = []models.Insight{}
	}

	resp := &models.ChatResponse{
		RequestID: b.idGen(),
		Question:  question,
		Intent:    res.Intent,
		Params:    res.Params,
		Insights:  insights,
		Timestamp: b.clock().Format(time.RFC3339Nano),
	}

	if b.config.ValidateEnvelope {
		if err := b.validator.ValidateGo(resp).Err(); err != nil {
			b.logger.Error("response envelope rejected", map[string]interface{}{
				"requestId": resp.RequestID,
				"error":     err.Error(),
			})
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
	}
	return resp, nil
}

// BuildError renders an outer failure as the error envelope, always with
// exactly one error insight.
func (b *Builder) BuildError(err error) *models.ErrorResponse {
	stdErr := errs.Classify(err)
	if stdErr == nil {
		stdErr = errs.NewInternalError(errors.New("unknown error"))
	}
	return &models.ErrorResponse{
		Error:    stdErr.Error(),
		Insights: []models.Insight{models.NewErrorInsight("Error", err)},
	}
}
