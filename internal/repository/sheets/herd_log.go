package sheets

import (
	"context"
	"fmt"
	"slices"

	"github.com/mamadbah2/herd/internal/domain/models"
)

const (
	// HerdLogRange holds one row per daily snapshot.
	HerdLogRange = "Herd!A:G"
	herdDates    = "Herd!A:A"
)

var herdLogHeader = []any{"date", "total", "sick", "for_sale", "healthy", "unchecked", "vaccinations_due"}

// AppendSnapshot appends the snapshot to the herd log unless a row for its
// date already exists. An empty sheet gets the header row first. It reports
// whether a row was written.
func AppendSnapshot(ctx context.Context, repo Repository, snap models.HerdSnapshot) (bool, error) {
	dates, err := repo.Column(ctx, herdDates)
	if err != nil {
		return false, fmt.Errorf("load herd log dates: %w", err)
	}
	if slices.Contains(dates, snap.Date) {
		return false, nil
	}

	row := []any{
		snap.Date,
		snap.Total,
		snap.Sick,
		snap.ForSale,
		snap.Healthy,
		snap.Unchecked,
		snap.VaccinationsDue,
	}
	rows := [][]any{row}
	if len(dates) == 0 {
		rows = [][]any{herdLogHeader, row}
	}
	if err := repo.AppendRows(ctx, HerdLogRange, rows); err != nil {
		return false, fmt.Errorf("append herd log row: %w", err)
	}
	return true, nil
}
