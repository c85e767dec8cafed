// Package encoding writes the collector's output files.
//
// Every write goes through a temporary file that is renamed over the
// destination, so readers never observe a half-written report or store.
package encoding

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
// Uses 0755 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file path exists.
func EnsureParentDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// ReadFile reads the entire contents of a file.
// Returns nil, nil if the file does not exist.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile atomically replaces path with data.
// Creates parent directories if they don't exist.
func WriteFile(path string, data []byte) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes value as indented JSON followed by a newline.
func WriteJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return WriteFile(path, append(data, '\n'))
}

// WriteCSV replaces path with a CSV document made of header and rows.
func WriteCSV(path string, header []string, rows [][]string) error {
	data, err := encodeCSV(header, rows)
	if err != nil {
		return fmt.Errorf("failed to encode CSV for %s: %w", path, err)
	}

	return WriteFile(path, data)
}

// AppendCSV adds rows to the CSV document at path. The header is written
// only when the file does not exist yet.
func AppendCSV(path string, header []string, rows [][]string) error {
	existing, err := ReadFile(path)
	if err != nil {
		return err
	}

	if existing == nil {
		return WriteCSV(path, header, rows)
	}

	data, err := encodeCSV(nil, rows)
	if err != nil {
		return fmt.Errorf("failed to encode CSV for %s: %w", path, err)
	}

	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		existing = append(existing, '\n')
	}

	return WriteFile(path, append(existing, data...))
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if header != nil {
		if err := w.Write(header); err != nil {
			return nil, err
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
