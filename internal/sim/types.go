package sim

import (
	"time"

	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
)

// Clock is a monotonic tick source.
type Clock interface {
	Now() uint64
	Frequency() uint64
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() uint64       { return uint64(time.Since(c.start)) }
func (c *SystemClock) Frequency() uint64 { return uint64(time.Second) }

// ManualClock only moves when told to. Headless runs and tests use it to
// admit frames deterministically.
type ManualClock struct {
	now  uint64
	freq uint64
}

func NewManualClock(freq uint64) *ManualClock {
	if freq == 0 {
		freq = uint64(time.Second)
	}
	return &ManualClock{freq: freq}
}

func (c *ManualClock) Now() uint64       { return c.now }
func (c *ManualClock) Frequency() uint64 { return c.freq }

// Tick moves the clock forward by n raw ticks.
func (c *ManualClock) Tick(n uint64) { c.now += n }

// Advance moves the clock forward by the given number of seconds.
func (c *ManualClock) Advance(seconds float64) {
	c.now += uint64(seconds * float64(c.freq))
}

type Phase uint8

const (
	Idle Phase = iota
	Bookkeeping
	GridBuild
	SubStepping
	GridTeardown
)

var phaseNames = [...]string{"idle", "bookkeeping", "grid_build", "sub_stepping", "grid_teardown"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Frame is the read-only view handed to observers after each admitted frame.
// Particles aliases the store; observers must not retain it.
type Frame struct {
	Index       int
	Dt          float64 // integration step
	Particles   []particles.Particle
	Boundary    physics.Boundary
	Settings    control.Settings
	Corrections int
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }
