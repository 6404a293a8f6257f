package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader resolves a model name to a ready Predictor.
type Loader interface {
	Load(ctx context.Context, name string) (Predictor, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, name string) (Predictor, error)

func (f LoaderFunc) Load(ctx context.Context, name string) (Predictor, error) {
	return f(ctx, name)
}

// FileLoader reads <Dir>/<name>.json, .yaml or .yml, first match wins.
type FileLoader struct {
	Dir string
}

var specExtensions = []string{".json", ".yaml", ".yml"}

func (l FileLoader) Load(ctx context.Context, name string) (Predictor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range specExtensions {
		path := filepath.Join(l.Dir, name+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read model %s: %w", name, err)
		}

		var spec Spec
		if ext == ".json" {
			err = json.Unmarshal(data, &spec)
		} else {
			err = yaml.Unmarshal(data, &spec)
		}
		if err != nil {
			return nil, fmt.Errorf("decode model %s: %w", name, err)
		}
		return spec.Build()
	}

	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
}
