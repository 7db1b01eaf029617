package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/mongodb"
	"github.com/mamadbah2/herd/internal/repository/sheets"
)

// Store is the relational data the reports are built from.
type Store interface {
	Summary(ctx context.Context) (models.HerdSummary, error)
	DueVaccinations(ctx context.Context, from, to models.Date) ([]models.Vaccination, error)
	GetCattle(ctx context.Context, id uint, withChecks bool) (*models.Cattle, error)
}

// Lister lists the records of one animal.
type Lister[T any] interface {
	List(ctx context.Context, cattleID uint) ([]T, error)
}

// ReportWriter persists generated reports.
type ReportWriter interface {
	Create(ctx context.Context, report *models.Report) error
}

// Recorder receives snapshot write outcomes.
type Recorder interface {
	SnapshotWritten(sink string, err error)
}

// Deps groups the collaborators of the reporting service. Archive and Sheet
// are optional.
type Deps struct {
	Store        Store
	Treatments   Lister[models.Treatment]
	Vaccinations Lister[models.Vaccination]
	Rations      Lister[models.FeedingRation]
	Reports      ReportWriter
	Archive      mongodb.Repository
	Sheet        sheets.Repository
	Recorder     Recorder
	Translator   *i18n.Translator
	// Lang is the language reports are written in.
	Lang     i18n.Lang
	LeadDays int
	Location *time.Location
}

// Service produces herd snapshots and per-animal reports.
type Service struct {
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(deps Deps, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Service{deps: deps, logger: logger, now: time.Now}
}

func (s *Service) today() models.Date {
	return models.DateOf(s.now().In(s.deps.Location))
}

// Snapshot computes the herd counters for day.
func (s *Service) Snapshot(ctx context.Context, day models.Date) (models.HerdSnapshot, error) {
	summary, err := s.deps.Store.Summary(ctx)
	if err != nil {
		return models.HerdSnapshot{}, fmt.Errorf("summarize herd: %w", err)
	}
	due, err := s.deps.Store.DueVaccinations(ctx, day, day.AddDays(s.deps.LeadDays))
	if err != nil {
		return models.HerdSnapshot{}, fmt.Errorf("load due vaccinations: %w", err)
	}

	return models.HerdSnapshot{
		Date:            day.String(),
		Total:           summary.Total,
		Sick:            summary.Sick,
		ForSale:         summary.ForSale,
		Healthy:         summary.Healthy,
		Unchecked:       summary.Unchecked,
		VaccinationsDue: int64(len(due)),
		CreatedAt:       s.now().UTC(),
	}, nil
}

// RunDailySnapshot computes today's snapshot and writes it to every
// configured sink. A failing sink does not stop the others.
func (s *Service) RunDailySnapshot(ctx context.Context) (models.HerdSnapshot, error) {
	snap, err := s.Snapshot(ctx, s.today())
	if err != nil {
		return snap, err
	}

	var errs []error
	if s.deps.Archive != nil {
		err := s.deps.Archive.SaveHerdSnapshot(ctx, snap)
		s.record("mongodb", err)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if s.deps.Sheet != nil {
		written, err := sheets.AppendSnapshot(ctx, s.deps.Sheet, snap)
		s.record("sheets", err)
		if err != nil {
			errs = append(errs, err)
		} else if !written {
			s.logger.Info("herd log already has this date", zap.String("date", snap.Date))
		}
	}

	s.logger.Info("herd snapshot taken",
		zap.String("date", snap.Date),
		zap.Int64("total", snap.Total),
		zap.Int64("sick", snap.Sick),
		zap.Int64("for_sale", snap.ForSale),
		zap.Int64("vaccinations_due", snap.VaccinationsDue))
	return snap, errors.Join(errs...)
}

func (s *Service) record(sink string, err error) {
	if err != nil {
		s.logger.Error("failed to write herd snapshot", zap.String("sink", sink), zap.Error(err))
	}
	if s.deps.Recorder != nil {
		s.deps.Recorder.SnapshotWritten(sink, err)
	}
}

// GenerateReport writes a dated summary report for one animal.
func (s *Service) GenerateReport(ctx context.Context, cattleID uint) (*models.Report, error) {
	c, err := s.deps.Store.GetCattle(ctx, cattleID, true)
	if err != nil {
		return nil, err
	}
	treatments, err := s.deps.Treatments.List(ctx, cattleID)
	if err != nil {
		return nil, err
	}
	vaccinations, err := s.deps.Vaccinations.List(ctx, cattleID)
	if err != nil {
		return nil, err
	}
	rations, err := s.deps.Rations.List(ctx, cattleID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	report := &models.Report{
		CattleID:   cattleID,
		ReportDate: today,
		Content:    s.reportContent(c, len(treatments), vaccinations, rations, today),
	}
	if err := s.deps.Reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	s.logger.Info("cattle report generated", zap.Uint("cattle_id", cattleID), zap.Uint("report_id", report.ID))
	return report, nil
}

func (s *Service) reportContent(c *models.Cattle, treatments int, vaccinations []models.Vaccination, rations []models.FeedingRation, today models.Date) string {
	tr, lang := s.deps.Translator, s.deps.Lang

	status := tr.T(lang, "status.none")
	if c.HasStatus() {
		status = tr.Status(lang, c.CurrentStatus())
	}

	lines := []string{
		tr.T(lang, "report.header", c.String()),
		tr.T(lang, "report.status", status),
	}
	if len(c.HealthChecks) > 0 {
		lines = append(lines, tr.T(lang, "report.last_check", c.HealthChecks[0].CheckDate.String()))
	}
	lines = append(lines, tr.T(lang, "report.counts", len(c.HealthChecks), treatments, len(vaccinations)))

	if next := nextDue(vaccinations, today); next != nil {
		lines = append(lines, tr.T(lang, "report.next_vaccine", next.VaccineName, next.NextDueDate.String()))
	}
	if len(rations) > 0 {
		latest := rations[len(rations)-1]
		lines = append(lines, tr.T(lang, "report.ration", latest.RationID, latest.FeedingTime))
	}
	return strings.Join(lines, "\n")
}

// nextDue returns the vaccination with the earliest due date on or after today.
func nextDue(vaccinations []models.Vaccination, today models.Date) *models.Vaccination {
	var next *models.Vaccination
	for i := range vaccinations {
		v := &vaccinations[i]
		if v.NextDueDate == nil || v.NextDueDate.Before(today) {
			continue
		}
		if next == nil || v.NextDueDate.Before(*next.NextDueDate) {
			next = v
		}
	}
	return next
}
