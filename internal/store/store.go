// Package store is the persistence layer: flat CSV files, one per
// collection, with a header row in schema column order. Whole-file writes are
// atomic (temp file, sync, rename), so a crash at any point leaves either the
// old file or the new one, never a partial write. Pure insertions can use the
// append fast path instead of rewriting the file.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pennywise-app/pennywise/internal/codec"
)

// ReadFile loads every record of a CSV file. A missing file or a file holding
// only a header yields an empty slice and no error. Column values are matched
// to schema fields by header name; the codec supplies defaults for columns
// the file predates.
func ReadFile(path string, schema codec.Schema, precision codec.RowPrecision) ([]codec.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close file after read", "path", path, "error", closeErr)
		}
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows from hand-edited files

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []codec.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		raw := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}
		records = append(records, schema.Decode(raw, precision(raw)))
	}
	return records, nil
}

// WriteFile atomically replaces the file with the full record set. The new
// content is written to a temporary file in the same directory, forced to
// stable storage, and renamed over the target, so the original stays intact
// until the rename commits.
func WriteFile(path string, schema codec.Schema, records []codec.Record, precision codec.RecordPrecision) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(schema.Header())
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(rowOf(schema, rec, precision(rec)))
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if writeErr == nil {
		writeErr = tmp.Sync()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("write %s: %w", path, writeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// AppendRecords adds rows to the end of an existing file without rewriting
// it. When the file does not exist yet it falls back to a full atomic write,
// which also lays down the header.
func AppendRecords(path string, schema codec.Schema, records []codec.Record, precision codec.RecordPrecision) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o600)
	if errors.Is(err, fs.ErrNotExist) {
		return WriteFile(path, schema, records, precision)
	}
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	if err := ensureTrailingNewline(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	var writeErr error
	for _, rec := range records {
		if writeErr = w.Write(rowOf(schema, rec, precision(rec))); writeErr != nil {
			break
		}
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if writeErr == nil {
		writeErr = f.Sync()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("append to %s: %w", path, writeErr)
	}
	return nil
}

// rowOf encodes a record and lays the columns out in schema order.
func rowOf(schema codec.Schema, rec codec.Record, precision int) []string {
	raw := schema.Encode(rec, precision)
	row := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		row[i] = raw[f.Name]
	}
	return row
}

// ensureTrailingNewline pads the file when a hand-edited copy lost its final
// newline, so the first appended row cannot fuse with the last existing one.
func ensureTrailingNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] != '\n' {
		_, err = f.Write([]byte{'\n'})
	}
	return err
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil {
		slog.Error("failed to remove temporary file", "path", path, "error", err)
	}
}
