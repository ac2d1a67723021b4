package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fynd/reviewboard/internal/models"
)

// CSVStore keeps the collection in a local flat file with a fixed header
// row. Every operation reads the full file, mutates in memory, and writes
// the full file back; acceptable for the small collections this serves.
type CSVStore struct {
	path       string
	withStatus bool
}

// NewCSVStore opens the flat-file store at path, creating an empty file
// with the header row on first run.
func NewCSVStore(path string, withStatus bool) (*CSVStore, error) {
	s := &CSVStore{path: path, withStatus: withStatus}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}
		if err := s.writeAll(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *CSVStore) header() []string {
	if s.withStatus {
		return append(append([]string{}, models.Columns...), models.StatusColumn)
	}
	return models.Columns
}

func (s *CSVStore) LoadAll(ctx context.Context) ([]models.Review, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate rows written before the status column existed
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := models.HeaderIndex(rows[0])
	recs := make([]models.Review, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, models.FromRow(header, row))
	}
	return recs, nil
}

func (s *CSVStore) Append(ctx context.Context, rec models.Review) error {
	recs, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	return s.writeAll(append(recs, rec))
}

func (s *CSVStore) Rewrite(ctx context.Context, recs []models.Review) error {
	return s.writeAll(recs)
}

func (s *CSVStore) Close() error { return nil }

// writeAll replaces the file via a temp-file rename so a crash mid-write
// never leaves a truncated collection behind.
func (s *CSVStore) writeAll(recs []models.Review) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".reviews-*.csv")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(s.header()); err != nil {
		tmp.Close()
		return err
	}
	for i := range recs {
		if err := w.Write(recs[i].Row(s.withStatus)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
