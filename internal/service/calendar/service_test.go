package calendar

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	"github.com/mamadbah2/herd/internal/validation"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func newTestService(t *testing.T) (*Service, *sqlstore.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "calendar.db"),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })

	tr, err := i18n.New(i18n.Thai)
	require.NoError(t, err)

	events := sqlstore.NewRecords[models.CalendarEvent](store, "start, id")
	return NewService(events, store, tr, bangkok, nil), store
}

func addCattle(t *testing.T, store *sqlstore.Store, tag, name string) *models.Cattle {
	t.Helper()
	c := &models.Cattle{TagNo: tag, Name: name, Gender: models.GenderFemale}
	require.NoError(t, store.SaveCattle(context.Background(), c, nil, models.Date{}))
	return c
}

func TestCreateDefaultsEndAndValidates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	c := addCattle(t, store, "A001", "Daisy")

	start := time.Date(2024, 5, 1, 8, 0, 0, 0, bangkok)
	ev := &models.CalendarEvent{CattleID: c.ID, Title: "Feed", Start: start, EventType: models.EventFeeding}
	require.NoError(t, svc.Create(ctx, ev))
	require.NotNil(t, ev.End)
	assert.True(t, ev.End.Equal(start))

	err := svc.Create(ctx, &models.CalendarEvent{CattleID: 99, Title: "x", Start: start, EventType: models.EventOther})
	errs, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "exists", errs["cattle"][0].Tag)

	err = svc.Create(ctx, &models.CalendarEvent{CattleID: c.ID, EventType: "party"})
	errs, ok = validation.As(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"title", "start", "event_type"}, errs.Fields())
}

func TestUpdateKeepsAnimalAndDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	a := addCattle(t, store, "A001", "")
	b := addCattle(t, store, "B001", "")

	start := time.Date(2024, 5, 1, 8, 0, 0, 0, bangkok)
	ev := &models.CalendarEvent{CattleID: a.ID, Title: "Feed", Start: start, EventType: models.EventFeeding}
	require.NoError(t, svc.Create(ctx, ev))

	later := start.Add(2 * time.Hour)
	updated, err := svc.Update(ctx, ev.ID, models.CalendarEvent{CattleID: b.ID, Title: "Breed", Start: later, EventType: models.EventBreeding})
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.CattleID)
	assert.Equal(t, "Breed", updated.Title)

	_, err = svc.Update(ctx, 404, models.CalendarEvent{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := svc.Delete(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Breed", deleted.Title)
	_, err = svc.Delete(ctx, ev.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeeds(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	daisy := addCattle(t, store, "A001", "Daisy")
	plain := addCattle(t, store, "B002", "")

	start := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, svc.Create(ctx, &models.CalendarEvent{CattleID: daisy.ID, Title: "Feed", Start: start, End: &end, EventType: models.EventFeeding}))
	require.NoError(t, svc.Create(ctx, &models.CalendarEvent{CattleID: plain.ID, Title: "Vet", Start: start.Add(24 * time.Hour), EventType: models.EventHealth}))

	feed, err := svc.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "Feed", feed[0].Title)
	assert.Equal(t, "2024-05-01T08:00:00+07:00", feed[0].Start)
	assert.Equal(t, "2024-05-01T09:00:00+07:00", feed[0].End)
	assert.Equal(t, feed[1].Start, feed[1].End)

	colored, err := svc.ColoredFeed(ctx, i18n.Thai)
	require.NoError(t, err)
	require.Len(t, colored, 2)
	assert.Equal(t, "Feed ชื่อโค: (Daisy) [ให้อาหาร]", colored[0].Title)
	assert.Equal(t, "#3788d8", colored[0].Color)
	assert.Equal(t, "Vet ชื่อโค: (B002) [ตรวจสุขภาพ]", colored[1].Title)
	assert.Equal(t, "#dc3545", colored[1].Color)

	english, err := svc.ColoredFeed(ctx, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "Feed Cattle: (Daisy) [Feeding]", english[0].Title)

	dash, err := svc.DashboardEvents(ctx)
	require.NoError(t, err)
	require.Len(t, dash, 2)
	assert.Equal(t, "Feed (A001)", dash[0].Title)
	assert.Equal(t, "/calendar/update-event/1/", dash[0].URL)
	require.NotNil(t, dash[0].End)
	assert.Equal(t, "2024-05-01T09:00:00+07:00", *dash[0].End)
}
