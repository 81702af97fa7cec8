package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/warden/pkg/derive"
	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/facility"
	"tableflip.dev/warden/pkg/metrics"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/report"
	"tableflip.dev/warden/pkg/resource"
	"tableflip.dev/warden/pkg/store"
)

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrCredentials   = errors.New("app: username and password are required")
	ErrNotEligible   = errors.New("app: cell is not available for admission")
)

// Options configures a Service. Everything but Config is optional.
type Options struct {
	Config      *store.Config
	Persistence store.Persistence
	Sink        notify.Sink
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	// HTTP replaces the resty client built from Config.
	HTTP *resty.Client
}

// Service wires the entity stores, the read-only aggregates and the local
// store so the CLI and the dashboard share one set of operations.
type Service struct {
	Inmates  *entitystore.Store[facility.Inmate]
	Staff    *entitystore.Store[facility.Staff]
	Visitors *entitystore.Store[facility.Visitor]
	Cells    *entitystore.Store[facility.Cell]

	Persistence store.Persistence

	blocks      *resource.Client[facility.CellBlock]
	staffStatus *resource.Client[facility.StaffStatus]
	weekly      *resource.Client[facility.WeeklyActivity]

	sink   notify.Sink
	logger *zap.Logger
}

// Dashboard is the content of the dashboard home panel.
type Dashboard struct {
	Summary     facility.DashboardSummary `json:"summary" yaml:"summary"`
	Blocks      []facility.CellBlock      `json:"blocks" yaml:"blocks"`
	StaffStatus []facility.StaffStatus    `json:"staffStatus" yaml:"staffStatus"`
	Weekly      []facility.WeeklyActivity `json:"weeklyActivity" yaml:"weeklyActivity"`
}

// New builds a Service. Notifications go to opts.Sink and are mirrored to the
// logger and, when present, counted by opts.Metrics.
func New(opts Options) (*Service, error) {
	if opts.Config == nil {
		return nil, errors.New("app: no config")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sink := opts.Sink
	if sink == nil {
		sink = notify.Discard
	}
	sink = notify.Multi{sink, notify.Log{Logger: logger.Named("notify")}}
	if opts.Metrics != nil {
		sink = notify.Counted{Counter: opts.Metrics, Next: sink}
	}

	rc := opts.HTTP
	if rc == nil {
		rc = resource.NewHTTP(opts.Config.Server, opts.Config.Timeout, logger)
	}

	var (
		clientOpts = []resource.Option{resource.WithLogger(logger.Named("resource"))}
		storeOpts  = []entitystore.Option{
			entitystore.WithSink(sink),
			entitystore.WithLogger(logger.Named("store")),
		}
	)
	if opts.Metrics != nil {
		clientOpts = append(clientOpts, resource.WithObserver(opts.Metrics))
		storeOpts = append(storeOpts, entitystore.WithObserver(opts.Metrics))
	}

	return &Service{
		Inmates:     entitystore.New(InmateKind, resource.New[facility.Inmate](rc, facility.InmateResource, clientOpts...), storeOpts...),
		Staff:       entitystore.New(StaffKind, resource.New[facility.Staff](rc, facility.StaffResource, clientOpts...), storeOpts...),
		Visitors:    entitystore.New(VisitorKind, resource.New[facility.Visitor](rc, facility.VisitorResource, clientOpts...), storeOpts...),
		Cells:       entitystore.New(CellKind, resource.New[facility.Cell](rc, facility.CellResource, clientOpts...), storeOpts...),
		Persistence: opts.Persistence,
		blocks:      resource.New[facility.CellBlock](rc, facility.CellBlockResource, clientOpts...),
		staffStatus: resource.New[facility.StaffStatus](rc, facility.StaffStatusResource, clientOpts...),
		weekly:      resource.New[facility.WeeklyActivity](rc, facility.WeeklyActivityResource, clientOpts...),
		sink:        sink,
		logger:      logger,
	}, nil
}

// Notify raises n through the service sink.
func (s *Service) Notify(n notify.Notification) {
	s.sink.Notify(n)
}

// MountAll lists the four collections concurrently. Every store reports its
// own failure; the first error is returned.
func (s *Service) MountAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Inmates.Mount(ctx) })
	g.Go(func() error { return s.Staff.Mount(ctx) })
	g.Go(func() error { return s.Visitors.Mount(ctx) })
	g.Go(func() error { return s.Cells.Mount(ctx) })
	return g.Wait()
}

// UnmountAll discards the four collections.
func (s *Service) UnmountAll() {
	s.Inmates.Unmount()
	s.Staff.Unmount()
	s.Visitors.Unmount()
	s.Cells.Unmount()
}

// Dashboard fetches the three aggregates concurrently and derives the
// headline counters from them.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Blocks, err = s.blocks.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.StaffStatus, err = s.staffStatus.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Weekly, err = s.weekly.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.sink.Notify(notify.Errorf("%s", failure("Failed to load dashboard data", err)))
		return Dashboard{}, err
	}
	d.Summary = derive.Summary(d.Blocks, d.StaffStatus, d.Weekly)
	return d, nil
}

// CellBlocks lists the per-block aggregate served by the API.
func (s *Service) CellBlocks(ctx context.Context) ([]facility.CellBlock, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		s.sink.Notify(notify.Errorf("%s", failure("Failed to load cell blocks", err)))
		return nil, err
	}
	return blocks, nil
}

// RefreshCells mounts the cell store on first use and re-lists it after.
func (s *Service) RefreshCells(ctx context.Context) error {
	if s.Cells.Mounted() {
		return s.Cells.Reload(ctx)
	}
	return s.Cells.Mount(ctx)
}

// EligibleCells returns the cells of block that can take another inmate,
// from a fresh listing.
func (s *Service) EligibleCells(ctx context.Context, block string) ([]string, error) {
	if err := s.RefreshCells(ctx); err != nil {
		return nil, err
	}
	return derive.EligibleCellNumbers(s.Cells.Items(), block), nil
}

// CellStatusOptions returns the statuses the cell with id may be switched to.
func (s *Service) CellStatusOptions(ctx context.Context, id string) ([]facility.CellStatus, error) {
	if err := s.RefreshCells(ctx); err != nil {
		return nil, err
	}
	c, ok := s.Cells.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: cell %s", entitystore.ErrNotFound, id)
	}
	return derive.StatusOptions(c), nil
}

// Admit creates an inmate after checking the chosen cell against a fresh
// cell listing, the way the dashboard form offers only eligible cells. The
// server remains the authority on capacity.
func (s *Service) Admit(ctx context.Context, draft facility.Inmate) (facility.Inmate, error) {
	if missing := draft.Missing(); len(missing) > 0 {
		return s.Inmates.Add(ctx, draft)
	}
	if err := s.RefreshCells(ctx); err != nil {
		return facility.Inmate{}, err
	}
	picker := derive.NewCellPicker(s.Cells.Items())
	picker.SetBlock(draft.Block)
	if err := picker.Select(draft.CellNumber); err != nil {
		s.sink.Notify(notify.Errorf("Cell %s in block %s is not available", draft.CellNumber, draft.Block))
		return facility.Inmate{}, fmt.Errorf("%w: %v", ErrNotEligible, err)
	}
	return s.Inmates.Add(ctx, draft)
}

// Login records user as the signed in operator. Any non-empty pair of
// credentials is accepted.
func (s *Service) Login(user, password string) (store.Session, error) {
	if s.Persistence == nil {
		return store.Session{}, ErrNoPersistence
	}
	user = strings.TrimSpace(user)
	if user == "" || strings.TrimSpace(password) == "" {
		return store.Session{}, ErrCredentials
	}
	session := store.Session{User: user, LoggedIn: now()}
	if err := s.Persistence.SaveSession(session); err != nil {
		return store.Session{}, err
	}
	s.logger.Info("login", zap.String("user", user))
	return session, nil
}

// Logout clears the session.
func (s *Service) Logout() error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.ClearSession()
}

// WhoAmI returns the current session, or store.ErrNoSession.
func (s *Service) WhoAmI() (store.Session, error) {
	if s.Persistence == nil {
		return store.Session{}, ErrNoPersistence
	}
	return s.Persistence.Session()
}

// Settings returns the saved facility settings.
func (s *Service) Settings() (store.Settings, error) {
	if s.Persistence == nil {
		return store.Settings{}, ErrNoPersistence
	}
	return s.Persistence.Settings()
}

// SaveSettings validates and persists settings.
func (s *Service) SaveSettings(settings store.Settings) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if err := s.Persistence.SaveSettings(settings); err != nil {
		s.sink.Notify(notify.New(notify.Error, "Settings Not Saved", err.Error()))
		return err
	}
	s.sink.Notify(notify.New(notify.Success, "Settings Saved", "All settings have been updated successfully"))
	return nil
}

// ResetSettings restores the default settings.
func (s *Service) ResetSettings() (store.Settings, error) {
	if s.Persistence == nil {
		return store.Settings{}, ErrNoPersistence
	}
	settings, err := s.Persistence.ResetSettings()
	if err != nil {
		return store.Settings{}, err
	}
	s.sink.Notify(notify.New(notify.Info, "Settings Reset", "All settings have been reset to default values"))
	return settings, nil
}

// Watch subscribes to local store changes.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Report lists every collection, fetches the dashboard counters and writes
// the workbook of type t to w.
func (s *Service) Report(ctx context.Context, w io.Writer, t report.Type, rng report.Range) error {
	if err := s.MountAll(ctx); err != nil {
		return err
	}
	dash, err := s.Dashboard(ctx)
	if err != nil {
		return err
	}
	data := report.Data{
		Inmates:   s.Inmates.Items(),
		Staff:     s.Staff.Items(),
		Visitors:  s.Visitors.Items(),
		Cells:     s.Cells.Items(),
		Summary:   dash.Summary,
		Generated: now(),
	}
	if s.Persistence != nil {
		if settings, err := s.Persistence.Settings(); err == nil {
			data.Facility = settings.FacilityName
		}
	}
	start := time.Now()
	if err := report.Write(w, t, rng, data); err != nil {
		s.sink.Notify(notify.Errorf("Failed to generate %s", t.Title()))
		return err
	}
	s.logger.Debug("report written", zap.String("type", string(t)), zap.Duration("took", time.Since(start)))
	s.sink.Notify(notify.Successf("%s generated", t.Title()))
	return nil
}

func failure(message string, err error) string {
	if reason := resource.Reason(err); reason != "" {
		return message + ": " + reason
	}
	return message
}
