package sim

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/integrators"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/spatial"
)

type Simulator struct {
	cfg      config.Config
	clock    Clock
	last     uint64
	store    *particles.Store
	grid     *spatial.Grid
	forces   physics.Forces
	boundary physics.Boundary
	verlet   *integrators.Verlet
	queue    *control.Queue
	settings control.Settings
	rng      *rand.Rand
	logger   *slog.Logger

	observers []Observer
	phase     Phase
	frames    int
	dt        float64
	err       error
}

type Option func(*Simulator)

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// New builds a simulator from cfg. The first frame is admitted once
// FrameSeconds have elapsed on clock.
func New(cfg *config.Config, clock Clock, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if clock == nil {
		clock = NewSystemClock()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulator{
		cfg:   *cfg,
		clock: clock,
		last:  clock.Now(),
		store: particles.New(cfg.Capacity),
		grid:  spatial.New(cfg.Capacity, cfg.CellSize),
		forces: physics.Forces{
			Gravity:   cfg.Gravity,
			Thrust:    cfg.Thrust,
			Attractor: cfg.Attractor,
			Center:    cfg.BoundaryCircle().Center,
		},
		boundary: physics.Boundary(cfg.BoundaryCircle()),
		verlet:   integrators.NewVerlet(cfg.Initial.Drag),
		queue:    control.NewQueue(),
		settings: control.NewSettings(cfg.Initial.Collisions, cfg.Initial.Drag, cfg.Initial.DragStep, cfg.Initial.SpawnRate),
		rng:      rand.New(rand.NewSource(seed)),
		logger:   slog.Default(),
		dt:       cfg.SubStepDt(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Submit queues a command for the next admitted frame.
func (s *Simulator) Submit(c control.Command) { s.queue.Push(c) }

// Update runs one host tick. It returns false without touching any state when
// less than one frame period has passed since the last admitted frame.
func (s *Simulator) Update() bool {
	now := s.clock.Now()
	elapsed := float64(now-s.last) / float64(s.clock.Frequency())
	if elapsed < s.cfg.FrameSeconds {
		return false
	}
	s.last = now
	s.Step()
	return true
}

// Step runs one frame regardless of the clock.
func (s *Simulator) Step() {
	var effects control.Effect
	s.queue.Drain(func(c control.Command) {
		effects |= s.settings.Apply(c)
	})
	snap := s.settings
	s.logEffects(effects, snap)

	s.phase = Bookkeeping
	if effects.Has(control.EffectReset) {
		s.store.Reset()
	}
	if snap.SpawnHeld {
		s.spawn(snap.SpawnRate)
	}
	if snap.DespawnHeld {
		s.store.DespawnLast()
	}

	s.phase = GridBuild
	ps := s.store.All()
	s.grid.Build(ps)

	s.phase = SubStepping
	s.verlet.Drag = snap.Drag
	toggles := physics.Toggles{Thrust: snap.ThrustHeld, Attractor: snap.AttractorEnabled}
	corrections := 0
	for i := 0; i < s.cfg.SubSteps; i++ {
		s.forces.Apply(ps, toggles)
		s.boundary.Contain(ps)
		if snap.CollisionsEnabled {
			corrections += physics.SolveCollisions(ps, s.grid)
		}
		s.verlet.Step(ps, s.dt)
	}

	s.phase = GridTeardown
	s.grid.Teardown()
	s.phase = Idle

	if s.err == nil {
		s.err = s.validate()
	}

	frame := Frame{
		Index:       s.frames,
		Dt:          s.dt,
		Particles:   ps,
		Boundary:    s.boundary,
		Settings:    snap,
		Corrections: corrections,
	}
	s.frames++
	for _, o := range s.observers {
		o.OnFrame(frame)
	}
}

// validate reports the first particle with a non-finite position.
func (s *Simulator) validate() error {
	for _, p := range s.store.All() {
		if !dynamo.IsValid(p.Pos) {
			return &dynamo.FrameError{
				Frame:   s.frames,
				Wrapped: fmt.Errorf("%w: particle %d at %v", dynamo.ErrInvalidState, p.ID, p.Pos),
			}
		}
	}
	return nil
}

func (s *Simulator) spawn(rate int) {
	at := s.cfg.SpawnPoint()
	for i := 0; i < rate; i++ {
		if _, ok := s.store.Spawn(at, s.cfg.ParticleRadius, s.randomColor()); !ok {
			return
		}
	}
}

func (s *Simulator) randomColor() color.RGBA {
	return color.RGBA{
		R: uint8(s.rng.Intn(256)),
		G: uint8(s.rng.Intn(256)),
		B: uint8(s.rng.Intn(256)),
		A: 255,
	}
}

func (s *Simulator) logEffects(e control.Effect, snap control.Settings) {
	if e == 0 {
		return
	}
	if e.Has(control.EffectReset) {
		s.logger.Info("reset", "removed", s.store.Len())
	}
	if e.Has(control.EffectCollisionsToggled) {
		s.logger.Info("collisions toggled", "enabled", snap.CollisionsEnabled)
	}
	if e.Has(control.EffectDragChanged) {
		s.logger.Info("drag changed", "drag", snap.Drag)
	}
	if e.Has(control.EffectRateChanged) {
		s.logger.Info("spawn rate changed", "rate", snap.SpawnRate)
	}
	if e.Has(control.EffectReport) {
		s.logger.Info("particle count", "count", s.store.Len())
	}
}

func (s *Simulator) Particles() []particles.Particle { return s.store.All() }
func (s *Simulator) Boundary() physics.Boundary      { return s.boundary }
func (s *Simulator) Count() int                      { return s.store.Len() }
func (s *Simulator) Capacity() int                   { return s.store.Cap() }
func (s *Simulator) Settings() control.Settings      { return s.settings }
func (s *Simulator) Frames() int                     { return s.frames }
func (s *Simulator) Phase() Phase                    { return s.phase }
func (s *Simulator) Config() config.Config           { return s.cfg }

// Err returns the first invalid-state error seen, if any. The loop keeps
// running regardless; hosts decide whether to stop.
func (s *Simulator) Err() error { return s.err }
