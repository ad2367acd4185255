package control

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Kind names a host intent.
type Kind uint8

const (
	Spawn Kind = iota
	Despawn
	Thrust
	Attractor
	ToggleCollisions
	Reset
	DragUp
	DragDown
	RateUp
	RateDown
	ReportCount
	numKinds
)

var kindNames = [numKinds]string{
	Spawn:            "spawn",
	Despawn:          "despawn",
	Thrust:           "thrust",
	Attractor:        "attractor",
	ToggleCollisions: "toggle_collisions",
	Reset:            "reset",
	DragUp:           "drag_up",
	DragDown:         "drag_down",
	RateUp:           "rate_up",
	RateDown:         "rate_down",
	ReportCount:      "report_count",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a script name such as "toggle_collisions" to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownCommand, name)
}

// Kinds lists every command kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Action is the edge a command reports.
type Action uint8

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	if a == Release {
		return "release"
	}
	return "press"
}

// ParseAction accepts "press"/"down" and "release"/"up".
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "press", "down", "":
		return Press, nil
	case "release", "up":
		return Release, nil
	}
	return 0, fmt.Errorf("%w: action %q", dynamo.ErrUnknownCommand, name)
}

// Command is one edge of one intent.
type Command struct {
	Kind   Kind
	Action Action
}

func Pressed(k Kind) Command  { return Command{Kind: k, Action: Press} }
func Released(k Kind) Command { return Command{Kind: k, Action: Release} }

func (c Command) String() string {
	return c.Kind.String() + ":" + c.Action.String()
}

// Queue buffers commands between frames. It is drained in submission order.
type Queue struct {
	pending []Command
}

func NewQueue() *Queue {
	return &Queue{pending: make([]Command, 0, 16)}
}

func (q *Queue) Push(c Command) { q.pending = append(q.pending, c) }
func (q *Queue) Len() int       { return len(q.pending) }

// Drain calls fn for every pending command, oldest first, and empties the
// queue. The backing array is kept for reuse.
func (q *Queue) Drain(fn func(Command)) {
	for _, c := range q.pending {
		fn(c)
	}
	q.pending = q.pending[:0]
}
