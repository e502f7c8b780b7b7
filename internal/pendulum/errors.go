package pendulum

import (
	"errors"
	"fmt"
)

// Domain errors for pendulum simulation.
var (
	// ErrRopeExceeded indicates a horizontal position the tether cannot reach.
	ErrRopeExceeded = errors.New("pendulum: position beyond rope reach")

	// ErrBadConfig indicates a configuration value outside its valid range.
	ErrBadConfig = errors.New("pendulum: invalid config")
)

// StepError wraps an error raised while advancing a particle with the
// micro-step index and simulated time at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
