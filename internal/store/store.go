package store

import (
	"context"
	"errors"

	"github.com/fynd/reviewboard/internal/models"
)

// ErrUnavailable wraps any backend connectivity failure so callers can
// distinguish "store is down" from data errors.
var ErrUnavailable = errors.New("record store unavailable")

// RecordStore is the durable, append-only review collection. The three
// backends (csv flat file, Google Sheets, relational database) are
// interchangeable; records come back in append order.
//
// Implementations return real errors. The fail-soft behavior required by
// the read side (LoadAll error -> empty feed, Append error -> user-visible
// notice) lives in the service layer, which also logs every absorbed error.
type RecordStore interface {
	// LoadAll reads the entire collection in append order.
	LoadAll(ctx context.Context) ([]models.Review, error)
	// Append adds one record at the end of the collection.
	Append(ctx context.Context, rec models.Review) error
	// Rewrite replaces the whole stored collection. Only the admin purge
	// uses it; there is no single-record delete.
	Rewrite(ctx context.Context, recs []models.Review) error
	// Close releases the backend handle, if any.
	Close() error
}
