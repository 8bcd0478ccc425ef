package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/combine"
	"github.com/cwbudde/algo-nrl/lookup"
	"github.com/cwbudde/algo-nrl/resolver"
)

var (
	// ErrNotReady is returned by Summary and Finalize before both roles are selected.
	ErrNotReady = errors.New("session: selection not complete")
	// ErrInSummary is returned by navigation calls that need an active resolver.
	ErrInSummary = errors.New("session: no question in summary phase")
)

// Phase is the step of the wizard.
type Phase int

const (
	PhaseSensor Phase = iota
	PhaseDatalogger
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseSensor:
		return "sensor"
	case PhaseDatalogger:
		return "datalogger"
	case PhaseSummary:
		return "summary"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Config holds session settings.
type Config struct {
	Logger          *slog.Logger
	ResolverOptions []resolver.Option
	CombineOptions  []combine.Option
}

// Option mutates a Config.
type Option func(*Config)

// WithLogger sets the logger. The session adds its id to every record.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithResolverOptions passes opts to both resolvers.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(cfg *Config) {
		cfg.ResolverOptions = append(cfg.ResolverOptions, opts...)
	}
}

// WithCombineOptions passes opts to [combine.Combine] in Finalize.
func WithCombineOptions(opts ...combine.Option) Option {
	return func(cfg *Config) {
		cfg.CombineOptions = append(cfg.CombineOptions, opts...)
	}
}

// Selection is one completed role.
type Selection struct {
	Role        catalog.Role
	Keys        []string
	Description string
	Payload     string
}

// Summary holds both selections.
type Summary struct {
	Sensor     Selection
	Datalogger Selection
}

// Session is a two-role selection over one catalog. It is not safe for
// concurrent use.
type Session struct {
	id     uuid.UUID
	root   string
	loader catalog.Loader
	lookup lookup.Lookup
	cfg    Config
	log    *slog.Logger

	phase      Phase
	sensor     *resolver.Resolver
	datalogger *resolver.Resolver
}

// New opens the sensor catalog below root. A nil loader reads from disk; a
// nil lookup resolves payloads with a [lookup.Store] on root.
func New(root string, loader catalog.Loader, lk lookup.Lookup, opts ...Option) (*Session, error) {
	cfg := Config{Logger: slog.Default()}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if loader == nil {
		loader = catalog.FileLoader{}
	}

	if lk == nil {
		lk = lookup.NewStore(root, loader)
	}

	s := &Session{
		id:     uuid.New(),
		root:   root,
		loader: loader,
		lookup: lk,
		cfg:    cfg,
	}
	s.log = cfg.Logger.With("session", s.id.String())

	sensor, err := resolver.New(loader, catalog.RoleRoot(root, catalog.RoleSensor), catalog.RoleSensor, cfg.ResolverOptions...)
	if err != nil {
		return nil, fmt.Errorf("session: open sensor catalog: %w", err)
	}

	s.sensor = sensor
	s.log.Debug("session started", "root", root)

	return s, nil
}

// ID returns the session id used in log records.
func (s *Session) ID() uuid.UUID { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Active returns the resolver of the current phase, or nil in the summary.
func (s *Session) Active() *resolver.Resolver {
	switch s.phase {
	case PhaseSensor:
		return s.sensor
	case PhaseDatalogger:
		return s.datalogger
	default:
		return nil
	}
}

// Options returns the choices of the current question.
func (s *Session) Options() ([]resolver.Choice, error) {
	r := s.Active()
	if r == nil {
		return nil, ErrInSummary
	}

	return r.Options()
}

// Choose records key for the current question.
func (s *Session) Choose(key string) error {
	r := s.Active()
	if r == nil {
		return ErrInSummary
	}

	return r.Choose(key)
}

// Advance commits the pending choice. Completing the sensor moves to the
// datalogger phase; completing the datalogger moves to the summary.
func (s *Session) Advance() error {
	r := s.Active()
	if r == nil {
		return ErrInSummary
	}

	// A completed resolver here means an earlier phase switch failed.
	if !r.Completed() {
		err := r.Advance()
		if err != nil {
			return err
		}

		s.log.Debug("advanced", "role", r.Role(), "keys", r.SelectedKeys(), "state", r.State())
	}

	if !r.Completed() {
		return nil
	}

	return s.nextPhase()
}

func (s *Session) nextPhase() error {
	switch s.phase {
	case PhaseSensor:
		if s.datalogger == nil {
			r, err := resolver.New(s.loader, catalog.RoleRoot(s.root, catalog.RoleDatalogger), catalog.RoleDatalogger, s.cfg.ResolverOptions...)
			if err != nil {
				return fmt.Errorf("session: open datalogger catalog: %w", err)
			}

			s.datalogger = r
		}

		s.phase = PhaseDatalogger
	case PhaseDatalogger:
		s.phase = PhaseSummary
	}

	s.log.Debug("phase changed", "phase", s.phase)

	return nil
}

// Retreat steps back one question, crossing phase boundaries: from the
// summary to the datalogger leaf choice and from the datalogger root to
// the sensor leaf choice. At the sensor root it fails with
// [resolver.ErrAtRoot].
func (s *Session) Retreat() error {
	switch s.phase {
	case PhaseSummary:
		s.phase = PhaseDatalogger
	case PhaseDatalogger:
		if !s.datalogger.CanRetreat() {
			s.phase = PhaseSensor
		}
	}

	err := s.Active().Retreat()
	if err != nil {
		return err
	}

	s.log.Debug("retreated", "phase", s.phase, "keys", s.Active().SelectedKeys())

	return nil
}

// Summary returns both selections once the summary phase is reached.
func (s *Session) Summary() (Summary, error) {
	if s.phase != PhaseSummary {
		return Summary{}, ErrNotReady
	}

	sensor, err := selection(s.sensor)
	if err != nil {
		return Summary{}, err
	}

	datalogger, err := selection(s.datalogger)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Sensor: sensor, Datalogger: datalogger}, nil
}

func selection(r *resolver.Resolver) (Selection, error) {
	res, err := r.Result()
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Role:        res.Role,
		Keys:        res.Keys,
		Description: res.Leaf.Description,
		Payload:     res.Leaf.Payload,
	}, nil
}

// Finalize looks up both selected entries and combines them. Lookup errors
// are returned unchanged and leave the selections intact.
func (s *Session) Finalize(ctx context.Context) (*combine.Result, error) {
	sum, err := s.Summary()
	if err != nil {
		return nil, err
	}

	sensor, err := s.lookup.Resolve(ctx, catalog.RoleSensor, sum.Sensor.Keys)
	if err != nil {
		s.log.WarnContext(ctx, "sensor lookup failed", "keys", sum.Sensor.Keys, "error", err)
		return nil, err
	}

	datalogger, err := s.lookup.Resolve(ctx, catalog.RoleDatalogger, sum.Datalogger.Keys)
	if err != nil {
		s.log.WarnContext(ctx, "datalogger lookup failed", "keys", sum.Datalogger.Keys, "error", err)
		return nil, err
	}

	res, err := combine.Combine(sensor, datalogger, s.cfg.CombineOptions...)
	if err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		s.log.WarnContext(ctx, "combine warning", "error", w)
	}

	s.log.InfoContext(ctx, "response combined",
		"sensor", sum.Sensor.Keys,
		"datalogger", sum.Datalogger.Keys,
		"stages", len(res.Response.Stages),
		"sensitivity", res.Response.Sensitivity.Value,
		"frequency", res.Response.Sensitivity.Frequency,
	)

	return res, nil
}
