package store

import (
	"context"
	"fmt"

	"github.com/fynd/reviewboard/internal/config"
	"github.com/fynd/reviewboard/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore keeps the collection on the first sheet of a Google
// spreadsheet. The header row is matched case-insensitively, so the
// document's column casing does not matter.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetTitle    string
	withStatus    bool
}

// NewSheetsStore connects to the configured spreadsheet and resolves the
// first sheet's title. The connection handle is held for the process
// lifetime; sheet contents are re-read on every LoadAll.
func NewSheetsStore(ctx context.Context, cfg *config.StoreConfig, withStatus bool) (*SheetsStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	doc, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", cfg.SpreadsheetID)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetTitle:    doc.Sheets[0].Properties.Title,
		withStatus:    withStatus,
	}, nil
}

func (s *SheetsStore) LoadAll(ctx context.Context) ([]models.Review, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetTitle).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := models.HeaderIndex(cellsToStrings(resp.Values[0]))
	recs := make([]models.Review, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		recs = append(recs, models.FromRow(header, cellsToStrings(row)))
	}
	return recs, nil
}

func (s *SheetsStore) Append(ctx context.Context, rec models.Review) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{rowToCells(rec.Row(s.withStatus))}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetTitle, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SheetsStore) Rewrite(ctx context.Context, recs []models.Review) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.sheetTitle, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	header := models.Columns
	if s.withStatus {
		header = append(append([]string{}, models.Columns...), models.StatusColumn)
	}
	values := [][]interface{}{rowToCells(header)}
	for i := range recs {
		values = append(values, rowToCells(recs[i].Row(s.withStatus)))
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.sheetTitle, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SheetsStore) Close() error { return nil }

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}

func rowToCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}
