package dynamo

import "errors"

// Domain errors for configuration and host-side operations. The physics step
// itself never fails; degenerate numerics are handled where they occur.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name with no registered config.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownCommand indicates a command name a script or host cannot map.
	ErrUnknownCommand = errors.New("dynamo: unknown command")

	// ErrInvalidState indicates a particle position with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNoData indicates a telemetry run with no recorded frames.
	ErrNoData = errors.New("dynamo: no recorded frames")
)

// FrameError wraps an error with the frame it was detected on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
