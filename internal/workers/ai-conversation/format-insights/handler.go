package formatinsights

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"supplychain-insights/internal/common/llm"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
	"supplychain-insights/internal/models"
)

const cacheKeyPrefix = "ai:narrative:"

// Formatter rewrites analytics insights into a single narrative answer.
// It never fails: on any problem the insights come back unchanged.
type Formatter struct {
	config    *Config
	generator llm.Generator
	cache     NarrativeCache
	logger    logger.Logger
}

func NewFormatter(config *Config, generator llm.Generator, log logger.Logger) *Formatter {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Formatter{
		config:    config,
		generator: generator,
		logger:    log.WithFields(map[string]interface{}{"stage": "format"}),
	}
}

// WithCache enables the narrative cache. A zero CacheTTL keeps it off.
func (f *Formatter) WithCache(cache NarrativeCache) *Formatter {
	f.cache = cache
	return f
}

func (f *Formatter) Format(ctx context.Context, question string, insights []models.Insight, intent models.Intent) (out []models.Insight) {
	defer func() {
		if r := recover(); r != nil {
			f.fallback("formatter panicked", fmt.Errorf("%v\n%s", r, debug.Stack()))
			out = insights
		}
	}()

	if f.generator == nil || len(insights) == 0 || insights[0].IsError() || intent == models.IntentGeneral {
		metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return insights
	}

	summary, err := f.summarize(insights)
	if err != nil {
		f.fallback("summary failed", err)
		return insights
	}

	key := f.cacheKey(question, intent, summary)
	if text, ok := f.cached(ctx, key); ok {
		metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeCached).Inc()
		return []models.Insight{f.enhanced(text, insights)}
	}

	gctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	text, err := f.generator.Generate(gctx, buildPrompt(question, summary), &llm.GenerateOptions{
		Temperature:     llm.Float32(f.config.Temperature),
		TopP:            llm.Float32(f.config.TopP),
		MaxOutputTokens: f.config.MaxOutputTokens,
	})
	if err != nil {
		f.fallback("generation failed", err)
		return insights
	}

	text = strings.TrimSpace(text)
	if len(text) <= f.config.MinLength {
		f.fallback("narrative too short", fmt.Errorf("%d bytes", len(text)))
		return insights
	}

	f.store(ctx, key, text)
	metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeEnhanced).Inc()
	f.logger.Info("narrative generated", map[string]interface{}{
		"length":   len(text),
		"insights": len(insights),
	})
	return []models.Insight{f.enhanced(text, insights)}
}

func (f *Formatter) enhanced(text string, insights []models.Insight) models.Insight {
	return models.NewInsight(text, models.AIEnhancedData{
		OriginalInsightsCount: len(insights),
		EnhancedBy:            f.generator.Name(),
		RawInsights:           insights,
	})
}

func (f *Formatter) fallback(reason string, err error) {
	metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeFallback).Inc()
	f.logger.Warn("using pre-formatted insights", map[string]interface{}{
		"reason": reason,
		"error":  truncate(err.Error(), 200),
	})
}

// summarize keeps each insight's tag, the head of its text and the scalar
// fields of object payloads. The serialised result is capped at SummaryLimit.
func (f *Formatter) summarize(insights []models.Insight) (string, error) {
	items := make([]summaryItem, 0, len(insights))
	for _, in := range insights {
		item := summaryItem{Type: string(in.Type), Text: truncate(in.Text, f.config.TextLimit)}
		if in.Data != nil {
			fields, err := scalarFields(in.Data)
			if err != nil {
				return "", err
			}
			if len(fields) > 0 {
				item.Data = fields
			}
		}
		items = append(items, item)
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return truncateBytes(string(out), f.config.SummaryLimit), nil
}

// scalarFields returns the number, string and bool fields of a payload that
// marshals to a JSON object; other payloads yield nothing.
func scalarFields(data models.Payload) (map[string]interface{}, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		switch v.(type) {
		case json.Number, string, bool:
			fields[k] = v
		}
	}
	return fields, nil
}

func buildPrompt(question, summary string) string {
	parts := []string{
		"You are a supply chain analyst for an Indian e-commerce marketplace.",
		fmt.Sprintf("A user asked: %q", question),
		"\nAnalysis results:",
		summary,
		"\nWrite the answer:",
		"1. Answer the question directly and in a conversational tone",
		"2. Quote the specific numbers from the results",
		"3. Use markdown (bold, bullet points) for structure",
		"4. Keep it to 2-4 focused, actionable paragraphs",
		"5. Use at most a few emojis (📊 💡 ⚠️ ✅)",
		"6. Where the results show a problem, pair it with a remedy",
		"7. Stay professional",
		"\nUse only the data above.",
	}
	return strings.Join(parts, "\n")
}

func (f *Formatter) cacheKey(question string, intent models.Intent, summary string) string {
	sum := sha256.Sum256([]byte(question + "|" + string(intent) + "|" + summary))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (f *Formatter) cacheEnabled() bool {
	return f.cache != nil && f.config.CacheTTL > 0
}

func (f *Formatter) cached(ctx context.Context, key string) (string, bool) {
	if !f.cacheEnabled() {
		return "", false
	}
	text, found, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.Debug("narrative cache read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return text, found && text != ""
}

func (f *Formatter) store(ctx context.Context, key, text string) {
	if !f.cacheEnabled() {
		return
	}
	if err := f.cache.Set(ctx, key, text, f.config.CacheTTL); err != nil {
		f.logger.Debug("narrative cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// truncate caps s at n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// truncateBytes caps s at n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
