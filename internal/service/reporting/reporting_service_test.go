package reporting

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
)

type fakeArchive struct {
	saved []models.HerdSnapshot
	err   error
}

func (f *fakeArchive) SaveHerdSnapshot(_ context.Context, snap models.HerdSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

type fakeSheet struct{ rows [][]any }

func (f *fakeSheet) AppendRows(_ context.Context, _ string, rows [][]any) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeSheet) Column(context.Context, string) ([]string, error) {
	dates := make([]string, 0, len(f.rows))
	for _, r := range f.rows {
		dates = append(dates, fmt.Sprint(r[0]))
	}
	return dates, nil
}

type sinkRecorder map[string]int

func (r sinkRecorder) SnapshotWritten(sink string, err error) {
	if err == nil {
		r[sink]++
	}
}

type fixture struct {
	svc     *Service
	store   *sqlstore.Store
	archive *fakeArchive
	sheet   *fakeSheet
	sinks   sinkRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "reporting.db"),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })

	tr, err := i18n.New(i18n.English)
	require.NoError(t, err)

	f := &fixture{store: store, archive: &fakeArchive{}, sheet: &fakeSheet{}, sinks: sinkRecorder{}}
	f.svc = NewService(Deps{
		Store:        store,
		Treatments:   sqlstore.NewRecords[models.Treatment](store, ""),
		Vaccinations: sqlstore.NewRecords[models.Vaccination](store, ""),
		Rations:      sqlstore.NewRecords[models.FeedingRation](store, ""),
		Reports:      sqlstore.NewRecords[models.Report](store, ""),
		Archive:      f.archive,
		Sheet:        f.sheet,
		Recorder:     f.sinks,
		Translator:   tr,
		Lang:         i18n.English,
		LeadDays:     7,
		Location:     time.UTC,
	}, nil)
	f.svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) addCattle(t *testing.T, tag, name string, st *models.Status) *models.Cattle {
	t.Helper()
	c := &models.Cattle{TagNo: tag, Name: name, Gender: models.GenderFemale}
	require.NoError(t, f.store.SaveCattle(context.Background(), c, st, models.NewDate(2024, 6, 1)))
	return c
}

func (f *fixture) addVaccination(t *testing.T, cattleID uint, name string, due models.Date) {
	t.Helper()
	v := &models.Vaccination{CattleID: cattleID, VaccineName: name, VaccineDate: models.NewDate(2024, 1, 1), NextDueDate: &due}
	require.NoError(t, sqlstore.NewRecords[models.Vaccination](f.store, "").Create(context.Background(), v))
}

func TestRunDailySnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sick := models.StatusSick

	a := f.addCattle(t, "A001", "", &sick)
	f.addCattle(t, "B001", "", nil)
	f.addVaccination(t, a.ID, "FMD", models.NewDate(2024, 7, 5))
	f.addVaccination(t, a.ID, "LSD", models.NewDate(2024, 9, 1))

	snap, err := f.svc.RunDailySnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", snap.Date)
	assert.Equal(t, int64(2), snap.Total)
	assert.Equal(t, int64(1), snap.Sick)
	assert.Equal(t, int64(1), snap.Unchecked)
	assert.Equal(t, int64(1), snap.VaccinationsDue)

	require.Len(t, f.archive.saved, 1)
	assert.Len(t, f.sheet.rows, 2, "header plus one row")
	assert.Equal(t, sinkRecorder{"mongodb": 1, "sheets": 1}, f.sinks)

	_, err = f.svc.RunDailySnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, f.sheet.rows, 2, "a date is logged once")
}

func TestRunDailySnapshotKeepsGoingWhenArchiveFails(t *testing.T) {
	f := newFixture(t)
	f.archive.err = errors.New("mongo down")

	_, err := f.svc.RunDailySnapshot(context.Background())
	assert.ErrorContains(t, err, "mongo down")
	assert.Len(t, f.sheet.rows, 2)
}

func TestGenerateReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	forSale := models.StatusForSale

	c := f.addCattle(t, "A001", "Daisy", &forSale)
	f.addVaccination(t, c.ID, "FMD", models.NewDate(2024, 8, 1))
	f.addVaccination(t, c.ID, "HS", models.NewDate(2024, 7, 10))
	f.addVaccination(t, c.ID, "Old", models.NewDate(2024, 6, 1))
	fresh, dry := 20.0, 8.5
	require.NoError(t, sqlstore.NewRecords[models.FeedingRation](f.store, "").Create(ctx,
		&models.FeedingRation{CattleID: c.ID, RationID: "FTMR-1", FeedingTime: "07:30, 16:30", FreshWeight: &fresh, DryWeight: &dry}))

	report, err := f.svc.GenerateReport(ctx, c.ID)
	require.NoError(t, err)
	assert.NotZero(t, report.ID)
	assert.Equal(t, models.NewDate(2024, 7, 1), report.ReportDate)
	assert.Equal(t, "Report for A001 - Daisy\n"+
		"Status: For sale\n"+
		"Last check: 2024-06-01\n"+
		"1 health checks, 0 treatments, 3 vaccinations\n"+
		"Next vaccine: HS (2024-07-10)\n"+
		"Ration: FTMR-1 at 07:30, 16:30", report.Content)

	_, err = f.svc.GenerateReport(ctx, 999)
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}
