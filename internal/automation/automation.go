package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/sim"
)

// Scenario is a scripted command stream for a headless run.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Frames      int     `yaml:"frames"`
	Events      []Event `yaml:"events"`
}

// Event submits one command before the given frame. A positive Hold sends the
// matching release Hold frames later.
type Event struct {
	Frame   int    `yaml:"frame"`
	Command string `yaml:"command"`
	Action  string `yaml:"action"`
	Hold    int    `yaml:"hold"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if _, err := sc.Schedule(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// FillScenario fills a container: spawn held for the first half, then settle.
func FillScenario(frames int) *Scenario {
	return &Scenario{
		Name:        "fill",
		Description: "spawn for half the run, then let the pile settle",
		Frames:      frames,
		Events: []Event{
			{Frame: 0, Command: "spawn", Hold: frames / 2},
		},
	}
}

// Schedule expands events into per-frame command lists.
func (sc *Scenario) Schedule() (map[int][]control.Command, error) {
	out := make(map[int][]control.Command)
	for i, ev := range sc.Events {
		kind, err := control.ParseKind(ev.Command)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		action, err := control.ParseAction(ev.Action)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		if ev.Frame < 0 || ev.Hold < 0 {
			return nil, fmt.Errorf("event %d: negative frame or hold", i+1)
		}
		out[ev.Frame] = append(out[ev.Frame], control.Command{Kind: kind, Action: action})
		if ev.Hold > 0 && action == control.Press {
			out[ev.Frame+ev.Hold] = append(out[ev.Frame+ev.Hold], control.Released(kind))
		}
	}
	return out, nil
}

// LastFrame is the latest frame any event touches, or -1.
func (sc *Scenario) LastFrame() int {
	last := -1
	sched, err := sc.Schedule()
	if err != nil {
		return last
	}
	frames := make([]int, 0, len(sched))
	for f := range sched {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	if len(frames) > 0 {
		last = frames[len(frames)-1]
	}
	return last
}

// Run drives s for sc.Frames admitted frames, advancing clock by exactly one
// frame period before each update. It returns the number of frames run.
func Run(ctx context.Context, s *sim.Simulator, clock *sim.ManualClock, sc *Scenario) (int, error) {
	sched, err := sc.Schedule()
	if err != nil {
		return 0, err
	}

	period := s.Config().FrameSeconds
	ticks := uint64(math.Ceil(period * float64(clock.Frequency())))

	for f := 0; f < sc.Frames; f++ {
		select {
		case <-ctx.Done():
			return f, ctx.Err()
		default:
		}

		for _, c := range sched[f] {
			s.Submit(c)
		}
		clock.Tick(ticks)
		if !s.Update() {
			return f, fmt.Errorf("frame %d not admitted", f)
		}
		if err := s.Err(); err != nil {
			return f + 1, err
		}

		if (f+1)%100 == 0 {
			slog.Debug("scenario progress", "scenario", sc.Name, "frame", f+1, "of", sc.Frames, "count", s.Count())
		}
	}
	return sc.Frames, nil
}
