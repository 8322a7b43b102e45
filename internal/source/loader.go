// Package source reads aggregated metrics inputs from disk.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/chatpulse/internal/model"

	"github.com/BurntSushi/toml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrNoInput is returned when no input path was configured.
var ErrNoInput = errors.New("no metrics input configured")

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat picks the decoder from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses data in the given format. Values are taken as supplied;
// ranges are the aggregator's responsibility.
func Decode(data []byte, format Format) (model.MetricsInput, error) {
	var in model.MetricsInput
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("decoding json: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("decoding toml: %w", err)
		}
	default:
		return in, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return in, nil
}

// Load reads a metrics input file.
func Load(path string) (model.MetricsInput, error) {
	snap, err := LoadSnapshot(path)
	return snap.Metrics, err
}

// LoadSnapshot reads a metrics input file and stamps it with the file's
// modification time.
func LoadSnapshot(path string) (model.Snapshot, error) {
	if path == "" {
		return model.Snapshot{}, ErrNoInput
	}
	format, err := DetectFormat(path)
	if err != nil {
		return model.Snapshot{}, err
	}

	//nolint:gosec // input path is chosen by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading input: %w", err)
	}

	in, err := Decode(data, format)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}

	captured := time.Now()
	if fi, err := os.Stat(path); err == nil {
		captured = fi.ModTime()
	}

	return model.Snapshot{
		CapturedAt: captured.UTC(),
		Source:     path,
		Metrics:    in,
	}, nil
}
