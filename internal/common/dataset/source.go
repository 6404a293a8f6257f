package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Spec says where a named dataset lives. Which fields matter depends on Kind.
type Spec struct {
	Name    string
	Kind    string
	Path    string
	Table   string
	Index   string
	Columns []string
	Limit   int
}

// Source loads a dataset described by a Spec.
type Source interface {
	Load(ctx context.Context, spec Spec) (*Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, spec Spec) (*Table, error)

func (f SourceFunc) Load(ctx context.Context, spec Spec) (*Table, error) {
	return f(ctx, spec)
}

// CSVSource reads files with a header row. Relative paths resolve against Dir.
type CSVSource struct {
	Dir string
}

func (s CSVSource) Load(ctx context.Context, spec Spec) (*Table, error) {
	path := spec.Path
	if path == "" {
		path = spec.Name + ".csv"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, spec.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", spec.Name, err)
	}
	defer f.Close()

	return ReadCSV(ctx, spec.Name, f, spec.Limit)
}

// ReadCSV parses CSV with a header row. Rows whose width differs from the
// header are skipped. limit <= 0 reads everything.
func ReadCSV(ctx context.Context, name string, r io.Reader, limit int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers for %s: %w", name, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := &Table{Name: name, Columns: header}
	for {
		if limit > 0 && len(t.Rows) >= limit {
			break
		}
		if len(t.Rows)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) != len(header) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
