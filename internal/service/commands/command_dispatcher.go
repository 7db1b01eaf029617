package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// maxDueDays caps the /due look-ahead.
const maxDueDays = 90

// HerdReader is the read side of the herd store used by commands.
type HerdReader interface {
	Summary(ctx context.Context) (models.HerdSummary, error)
	ListCattle(ctx context.Context, filter sqlstore.CattleFilter) ([]models.Cattle, error)
	FindByTag(ctx context.Context, tag string) (*models.Cattle, error)
	LatestHealthCheck(ctx context.Context, cattleID uint) (*models.HealthCheck, error)
	DueVaccinations(ctx context.Context, from, to models.Date) ([]models.Vaccination, error)
	CattleByIDs(ctx context.Context, ids []uint) (map[uint]models.Cattle, error)
}

// Dispatcher executes parsed commands and returns the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
	Help() string
}

// Options configures reply language and the default /due window.
type Options struct {
	Translator *i18n.Translator
	Lang       i18n.Lang
	LeadDays   int
	Location   *time.Location
}

// Service implements the Dispatcher interface.
type Service struct {
	store  HerdReader
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(store HerdReader, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{store: store, opts: opts, logger: logger, now: time.Now}
}

func (s *Service) t(key string, args ...any) string {
	return s.opts.Translator.T(s.opts.Lang, key, args...)
}

// Help lists the supported commands.
func (s *Service) Help() string {
	return s.t("cmd.help")
}

// HandleCommand runs one command and formats its reply.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandSummary:
		summary, err := s.store.Summary(ctx)
		if err != nil {
			return "", err
		}
		return s.t("cmd.summary", summary.Total, summary.Sick, summary.ForSale, summary.Healthy, summary.Unchecked), nil
	case models.CommandSick:
		return s.listByStatus(ctx, models.StatusSick, "cmd.sick")
	case models.CommandForSale:
		return s.listByStatus(ctx, models.StatusForSale, "cmd.forsale")
	case models.CommandStatus:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		return s.status(ctx, cmd.Args[0])
	case models.CommandDue:
		days := s.opts.LeadDays
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 0 || n > maxDueDays {
				return "", ErrInvalidArguments
			}
			days = n
		}
		return s.due(ctx, days)
	case models.CommandHelp:
		return s.Help(), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) listByStatus(ctx context.Context, status models.Status, header string) (string, error) {
	herd, err := s.store.ListCattle(ctx, sqlstore.CattleFilter{Status: status})
	if err != nil {
		return "", err
	}

	lines := []string{s.t(header, len(herd))}
	for _, c := range herd {
		lines = append(lines, "- "+c.String())
	}
	if len(herd) == 0 {
		lines = append(lines, s.t("cmd.none"))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) status(ctx context.Context, tag string) (string, error) {
	c, err := s.store.FindByTag(ctx, tag)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return s.t("cmd.not_found", tag), nil
	}
	if err != nil {
		return "", err
	}

	hc, err := s.store.LatestHealthCheck(ctx, c.ID)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return s.t("cmd.status_unchecked", c.String()), nil
	}
	if err != nil {
		return "", err
	}

	reply := s.t("cmd.status", c.String(), s.opts.Translator.Status(s.opts.Lang, hc.Status), hc.CheckDate.String())
	if hc.Temperature != nil {
		reply += "\n" + s.t("cmd.temperature", fmt.Sprintf("%.1f", *hc.Temperature))
	}
	return reply, nil
}

func (s *Service) due(ctx context.Context, days int) (string, error) {
	today := models.DateOf(s.now().In(s.opts.Location))
	until := today.AddDays(days)

	due, err := s.store.DueVaccinations(ctx, today, until)
	if err != nil {
		return "", err
	}

	ids := make([]uint, 0, len(due))
	for _, v := range due {
		ids = append(ids, v.CattleID)
	}
	herd, err := s.store.CattleByIDs(ctx, ids)
	if err != nil {
		return "", err
	}

	lines := []string{s.t("cmd.due", until.String(), len(due))}
	for _, v := range due {
		if v.NextDueDate == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s %s %s", v.NextDueDate.String(), herd[v.CattleID].TagNo, v.VaccineName))
	}
	if len(due) == 0 {
		lines = append(lines, s.t("cmd.none"))
	}
	return strings.Join(lines, "\n"), nil
}
