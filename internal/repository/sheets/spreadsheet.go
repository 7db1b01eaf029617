// Package sheets exports the daily herd snapshot to a Google Sheets log.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/herd/internal/config"
)

// Repository is the spreadsheet access the herd log needs.
type Repository interface {
	// AppendRows adds rows below the last filled row of rng.
	AppendRows(ctx context.Context, rng string, rows [][]any) error
	// Column returns the cells of a single-column range, top to bottom.
	Column(ctx context.Context, rng string) ([]string, error)
}

// Spreadsheet is a Repository backed by the Google Sheets API.
type Spreadsheet struct {
	service *sheetsapi.Service
	id      string
	logger  *zap.Logger
}

// Open authenticates with the service account file from cfg.
func Open(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Spreadsheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		return nil, errors.New("sheets export is not configured")
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	return &Spreadsheet{service: service, id: cfg.SpreadsheetID, logger: logger}, nil
}

func (s *Spreadsheet) AppendRows(ctx context.Context, rng string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.id, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows to %s: %w", len(rows), rng, err)
	}

	s.logger.Debug("rows appended to sheet", zap.String("range", rng), zap.Int("rows", len(rows)))
	return nil
}

func (s *Spreadsheet) Column(ctx context.Context, rng string) ([]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.id, rng).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	cells := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		cells[i] = fmt.Sprint(v)
	}
	return cells, nil
}
