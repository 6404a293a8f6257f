// Package llm wraps the generative-language services used to classify
// questions and narrate insights.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when the service answers with no text.
	ErrEmptyResponse = errors.New("empty response from generative service")
	// ErrNoWorkingModel is returned when every candidate model failed the probe.
	ErrNoWorkingModel = errors.New("no working model found")
)

// Generator produces text for a prompt. Implementations make exactly one
// request per call and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)
	Name() string
	Model() string
}

// GenerateOptions carries optional sampling settings. Nil fields use the
// service default.
type GenerateOptions struct {
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens int32
}

// Float32 returns a pointer to v.
func Float32(v float32) *float32 {
	return &v
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	return f(ctx, prompt, opts)
}

func (f GeneratorFunc) Name() string  { return "func" }
func (f GeneratorFunc) Model() string { return "func" }
