package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
)

// newTestStore opens a migrated SQLite database in a temporary directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	store, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err, "Failed to open database")
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "Failed to close store")
	})
	return store
}

func addCattle(t *testing.T, s *Store, tag string) *models.Cattle {
	t.Helper()
	c := &models.Cattle{TagNo: tag, Gender: models.GenderFemale}
	require.NoError(t, s.SaveCattle(context.Background(), c, nil, models.Date{}))
	return c
}

func addCheck(t *testing.T, s *Store, cattleID uint, day models.Date, status models.Status) *models.HealthCheck {
	t.Helper()
	hc := &models.HealthCheck{CattleID: cattleID, CheckDate: day, Status: status}
	require.NoError(t, NewRecords[models.HealthCheck](s, "").Create(context.Background(), hc))
	return hc
}

func count[T any](t *testing.T, s *Store, cattleID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(new(T)).Where("cattle_id = ?", cattleID).Count(&n).Error)
	return n
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "db.sqlite3?_foreign_keys=on", sqliteDSN("db.sqlite3"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", sqliteDSN("file:x.db?cache=shared"))
}

func TestDuplicateTagRejected(t *testing.T) {
	s := newTestStore(t)
	addCattle(t, s, "A001")

	dup := &models.Cattle{TagNo: "A001", Gender: models.GenderMale}
	err := s.SaveCattle(context.Background(), dup, nil, models.Date{})
	assert.ErrorIs(t, err, ErrDuplicateTag)
}

func TestLatestStatusUsesNewestCheckDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")

	// Inserted out of order: the later date wins, not the later insert.
	addCheck(t, s, a.ID, models.NewDate(2024, time.March, 1), models.StatusSick)
	addCheck(t, s, a.ID, models.NewDate(2024, time.January, 1), models.StatusHealthy)

	got, err := s.GetCattle(ctx, a.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got.LatestStatus)
	assert.Equal(t, models.StatusSick, *got.LatestStatus)
}

func TestLatestStatusTieBrokenByHighestID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	day := models.NewDate(2024, time.May, 5)

	addCheck(t, s, a.ID, day, models.StatusSick)
	addCheck(t, s, a.ID, day, models.StatusForSale)

	got, err := s.GetCattle(ctx, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForSale, got.CurrentStatus())

	latest, err := s.LatestHealthCheck(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForSale, latest.Status)
}

func TestListCattleFiltersAndSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := addCattle(t, s, "A001")
	addCheck(t, s, a.ID, models.NewDate(2024, time.January, 1), models.StatusHealthy)
	addCheck(t, s, a.ID, models.NewDate(2024, time.March, 1), models.StatusSick)

	b := addCattle(t, s, "B002")
	addCheck(t, s, b.ID, models.NewDate(2024, time.February, 1), models.StatusForSale)

	c := addCattle(t, s, "a003")
	addCheck(t, s, c.ID, models.NewDate(2024, time.February, 1), models.StatusHealthy)

	addCattle(t, s, "X_100")

	sick, err := s.ListCattle(ctx, CattleFilter{Status: models.StatusSick})
	require.NoError(t, err)
	require.Len(t, sick, 1)
	assert.Equal(t, "A001", sick[0].TagNo)

	forSale, err := s.ListCattle(ctx, CattleFilter{Status: models.StatusForSale})
	require.NoError(t, err)
	require.Len(t, forSale, 1)
	assert.Equal(t, "B002", forSale[0].TagNo)

	byTag, err := s.ListCattle(ctx, CattleFilter{Query: "a0"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	underscore, err := s.ListCattle(ctx, CattleFilter{Query: "_"})
	require.NoError(t, err)
	require.Len(t, underscore, 1, "underscore is matched literally")
	assert.Equal(t, "X_100", underscore[0].TagNo)
	assert.False(t, underscore[0].HasStatus())

	all, err := s.ListCattle(ctx, CattleFilter{WithChecks: true})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Len(t, all[0].HealthChecks, 2)
	assert.Equal(t, models.StatusSick, all[0].HealthChecks[0].Status, "checks are newest first")

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HerdSummary{Total: 4, Sick: 1, ForSale: 1, Healthy: 1, Unchecked: 1}, summary)
}

func TestSaveCattleStatusWriteThrough(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := models.NewDate(2025, time.June, 1)

	birth := models.NewDate(2022, time.April, 2)
	c := &models.Cattle{TagNo: "C010", Gender: models.GenderMale, BirthDate: &birth}
	sick := models.StatusSick
	require.NoError(t, s.SaveCattle(ctx, c, &sick, today))

	latest, err := s.LatestHealthCheck(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSick, latest.Status)
	assert.Equal(t, birth, latest.CheckDate, "new check is dated at birth")

	forSale := models.StatusForSale
	c.Name = "Bull"
	require.NoError(t, s.SaveCattle(ctx, c, &forSale, today))
	assert.Equal(t, int64(1), count[models.HealthCheck](t, s, c.ID), "existing check is updated, not duplicated")

	got, err := s.GetCattle(ctx, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Bull", got.Name)
	assert.Equal(t, models.StatusForSale, got.CurrentStatus())

	d := &models.Cattle{TagNo: "D020", Gender: models.GenderFemale}
	require.NoError(t, s.SaveCattle(ctx, d, &sick, today))
	latest, err = s.LatestHealthCheck(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, today, latest.CheckDate, "without birth date the check is dated today")
}

func TestSaveCattleUnknownID(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveCattle(context.Background(), &models.Cattle{ID: 99, TagNo: "Z", Gender: models.GenderMale}, nil, models.Date{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCattleCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	keep := addCattle(t, s, "K001")
	day := models.NewDate(2024, time.January, 1)
	fresh, dry := 12.5, 4.25

	require.NoError(t, s.SaveHealthEvent(ctx, a.ID, models.HealthEvent{
		Check:       &models.HealthCheck{CheckDate: day, Status: models.StatusHealthy},
		Vaccination: &models.Vaccination{VaccineName: "FMD", VaccineDate: day},
		Ration:      &models.FeedingRation{RationID: "FTMR-1", FeedingTime: "07:30", FreshWeight: &fresh, DryWeight: &dry},
		Event:       &models.CalendarEvent{Title: "Check", Start: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), EventType: models.EventHealth},
	}))
	require.NoError(t, NewRecords[models.Treatment](s, "").Create(ctx, &models.Treatment{CattleID: a.ID, Diagnosis: "Mastitis", TreatmentDate: day}))
	addCheck(t, s, keep.ID, day, models.StatusSick)

	deleted, err := s.DeleteCattle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A001", deleted.TagNo)

	assert.Zero(t, count[models.HealthCheck](t, s, a.ID))
	assert.Zero(t, count[models.Vaccination](t, s, a.ID))
	assert.Zero(t, count[models.FeedingRation](t, s, a.ID))
	assert.Zero(t, count[models.CalendarEvent](t, s, a.ID))
	assert.Zero(t, count[models.Treatment](t, s, a.ID))
	assert.Equal(t, int64(1), count[models.HealthCheck](t, s, keep.ID))

	_, err = s.DeleteCattle(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveHealthEventIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	day := models.NewDate(2024, time.January, 1)

	// A ration missing its NOT NULL weights fails after the check was inserted.
	err := s.SaveHealthEvent(ctx, a.ID, models.HealthEvent{
		Check:  &models.HealthCheck{CheckDate: day, Status: models.StatusSick},
		Ration: &models.FeedingRation{RationID: "FTMR-1", FeedingTime: "07:30"},
	})
	require.Error(t, err)
	assert.Zero(t, count[models.HealthCheck](t, s, a.ID), "health check rolled back")

	err = s.SaveHealthEvent(ctx, 999, models.HealthEvent{Check: &models.HealthCheck{CheckDate: day}})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.SaveHealthEvent(ctx, a.ID, models.HealthEvent{}))
}

func TestRecordsCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	b := addCattle(t, s, "B001")
	repo := NewRecords[models.Vaccination](s, "vaccine_date DESC, id DESC")

	err := repo.Create(ctx, &models.Vaccination{CattleID: 404, VaccineName: "FMD", VaccineDate: models.NewDate(2024, 1, 1)})
	assert.ErrorIs(t, err, ErrCattleNotFound)

	v := &models.Vaccination{CattleID: a.ID, VaccineName: "FMD", VaccineDate: models.NewDate(2024, 1, 1)}
	require.NoError(t, repo.Create(ctx, v))
	require.NoError(t, repo.Create(ctx, &models.Vaccination{CattleID: b.ID, VaccineName: "LSD", VaccineDate: models.NewDate(2024, 2, 1)}))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "LSD", all[0].VaccineName)

	mine, err := repo.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	v.DoctorName = "Dr. Somchai"
	require.NoError(t, repo.Update(ctx, v))
	got, err := repo.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Somchai", got.DoctorName)

	missing := &models.Vaccination{ID: 555, CattleID: a.ID, VaccineName: "x", VaccineDate: models.NewDate(2024, 1, 1)}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, v.ID))
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), ErrNotFound)
	_, err = repo.Get(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByTagAndCattleByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	addCheck(t, s, a.ID, models.NewDate(2024, 1, 1), models.StatusSick)
	b := addCattle(t, s, "B001")

	got, err := s.FindByTag(ctx, " a001 ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, models.StatusSick, got.CurrentStatus())

	_, err = s.FindByTag(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := s.CattleByIDs(ctx, []uint{a.ID, b.ID, 77})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
	assert.Equal(t, "B001", byID[b.ID].TagNo)
}

func TestFindByTagCaseVariants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	upper := addCattle(t, s, "A001")
	lower := addCattle(t, s, "a001")
	addCattle(t, s, "Bx1")
	addCattle(t, s, "bX1")

	got, err := s.FindByTag(ctx, "a001")
	require.NoError(t, err)
	assert.Equal(t, lower.ID, got.ID)

	got, err = s.FindByTag(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, upper.ID, got.ID)

	_, err = s.FindByTag(ctx, "BX1")
	assert.ErrorIs(t, err, ErrNotFound, "ambiguous case-insensitive match")
}

func TestReminderQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := addCattle(t, s, "A001")
	vaccs := NewRecords[models.Vaccination](s, "")

	in := models.NewDate(2024, 6, 5)
	out := models.NewDate(2024, 7, 30)
	due := &models.Vaccination{CattleID: a.ID, VaccineName: "FMD", VaccineDate: models.NewDate(2024, 1, 1), NextDueDate: &in}
	late := &models.Vaccination{CattleID: a.ID, VaccineName: "LSD", VaccineDate: models.NewDate(2024, 1, 1), NextDueDate: &out}
	none := &models.Vaccination{CattleID: a.ID, VaccineName: "HS", VaccineDate: models.NewDate(2024, 1, 1)}
	for _, v := range []*models.Vaccination{due, late, none} {
		require.NoError(t, vaccs.Create(ctx, v))
	}

	found, err := s.DueVaccinations(ctx, models.NewDate(2024, 6, 1), models.NewDate(2024, 6, 8))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, due.ID, found[0].ID)

	reminder := models.Notification{CattleID: a.ID, Type: models.NotificationVaccine, Message: "FMD due", NotifyDate: models.NewDate(2024, 6, 1), VaccinationID: &due.ID}
	created, err := s.CreateReminders(ctx, []models.Notification{reminder})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.NotificationPending, created[0].Status)

	created, err = s.CreateReminders(ctx, []models.Notification{reminder})
	require.NoError(t, err)
	assert.Empty(t, created, "one reminder per vaccination")

	unsent, err := s.UnsentNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, unsent, 1)

	require.NoError(t, s.MarkNotificationSent(ctx, unsent[0].ID, time.Now()))
	unsent, err = s.UnsentNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsent)

	assert.ErrorIs(t, s.MarkNotificationSent(ctx, 12345, time.Now()), ErrNotFound)
}
