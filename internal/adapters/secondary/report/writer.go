package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// Writer persists run reports as YAML, or as JSON when the path ends in .json
type Writer struct {
	fs ports.FileSystem
}

// NewWriter creates a report writer
func NewWriter(fs ports.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write encodes report and writes it to path, replacing any existing file
func (w *Writer) Write(ctx context.Context, path string, report *entities.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("no report to write to %s", path)
	}

	data, err := Encode(path, report)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating report directory %s: %w", dir, err)
		}
	}

	if err := w.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	return nil
}

// Encode serializes report in the format implied by path's extension
func Encode(path string, report *entities.RunReport) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding report as JSON: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("encoding report as YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding report as YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// Ensure Writer implements ports.ReportWriter
var _ ports.ReportWriter = (*Writer)(nil)
