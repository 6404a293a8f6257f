package classifyintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"supplychain-insights/internal/common/llm"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/validation"
	"supplychain-insights/internal/models"
	extractparams "supplychain-insights/internal/workers/query-understanding/extract-params"
)

var (
	ErrAIUnavailable      = errors.New("AI_UNAVAILABLE")
	ErrAITimeout          = errors.New("AI_TIMEOUT")
	ErrAIResponseTooLarge = errors.New("AI_RESPONSE_TOO_LARGE")
	ErrAIResponseInvalid  = errors.New("AI_RESPONSE_INVALID")
	ErrInvalidIntent      = errors.New("INVALID_INTENT")
)

// AIClassifier asks the generative service for intent and parameters in one
// call. It has no retries; the resolver falls back to keywords on any error.
type AIClassifier struct {
	config    *Config
	generator llm.Generator
	validator *validation.Validator
	logger    logger.Logger
}

func NewAIClassifier(config *Config, generator llm.Generator, log logger.Logger) *AIClassifier {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &AIClassifier{
		config:    config,
		generator: generator,
		validator: validation.MustValidator(aiResponseSchema),
		logger:    log.WithFields(map[string]interface{}{"classifier": SourceAI}),
	}
}

func (c *AIClassifier) Name() string { return SourceAI }

// Classify never panics; a panicking generator is reported as ErrAIUnavailable.
func (c *AIClassifier) Classify(ctx context.Context, question string) (cls *Classification, err error) {
	if c.generator == nil {
		return nil, ErrAIUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("AI classifier panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			cls, err = nil, fmt.Errorf("%w: panic: %v", ErrAIUnavailable, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	text, err := c.generator.Generate(ctx, buildPrompt(question), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrAITimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	if len(text) > c.config.MaxResponseBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrAIResponseTooLarge, len(text))
	}

	return c.parse(question, text)
}

func (c *AIClassifier) parse(question, text string) (*Classification, error) {
	body := stripFences(strings.TrimSpace(text))

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		// Text mode: the whole reply is taken as the intent label.
		intent, ok := models.ParseIntent(body)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIntent, truncate(body, 64))
		}
		c.logger.Debug("AI classification in text mode", map[string]interface{}{"intent": intent})
		return &Classification{
			Intent: intent,
			Params: extractparams.Extract(question),
			Source: SourceAI,
		}, nil
	}

	if err := c.validator.ValidateBytes(raw).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIResponseInvalid, err)
	}

	var resp aiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIResponseInvalid, err)
	}

	label := resp.Intent
	if strings.TrimSpace(label) == "" {
		label = string(models.IntentGeneral)
	}
	intent, ok := models.ParseIntent(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIntent, truncate(label, 64))
	}

	return &Classification{
		Intent: intent,
		Params: paramsFromResponse(resp),
		Source: SourceAI,
	}, nil
}

func paramsFromResponse(resp aiResponse) models.ParamSet {
	var params models.ParamSet

	if q, ok := models.ParseQuarter(resp.Quarter); ok {
		params.SetQuarter(q)
	}

	if pct, ok := toFloat(resp.Percentage); ok && pct != 0 {
		surge := pct / 100
		params.SurgePct = &surge
	}

	if tf := strings.TrimSpace(resp.Timeframe); tf != "" {
		params.Timeframe = &tf
	}

	return params
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "%"), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// stripFences unwraps a ```json or bare ``` fenced block.
func stripFences(s string) string {
	for _, fence := range []string{"```json", "```"} {
		idx := strings.Index(s, fence)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(fence):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func buildPrompt(question string) string {
	parts := []string{
		"Analyze this supply chain question and extract intent + parameters.",
		"",
		fmt.Sprintf("Question: %q", question),
		"",
		"Categories:",
		"- forecast: demand predictions, trends, Q1/Q2/Q3/Q4, future outlook",
		"- inventory: stock levels, adjustments, recommendations",
		"- shipping: delivery, courier performance, delays",
		"- sentiment: customer reviews, satisfaction, feedback",
		"- warehouse: operations, efficiency, processing",
		"- general: help, capabilities, unclear",
		"",
		"Respond in JSON format:",
		"{",
		`  "intent": "category_name",`,
		`  "quarter": "Q1/Q2/Q3/Q4 if mentioned",`,
		`  "percentage": number_if_mentioned,`,
		`  "timeframe": "description if relevant"`,
		"}",
	}
	return strings.Join(parts, "\n")
}
