package sbp

import "context"

// DriverState is one of the driver's reported state transitions (spec.md
// §6: "Recognized states: running, homing, probe, stop").
type DriverState int

const (
	StateRunning DriverState = iota
	StateHoming
	StateProbe
	StateStop
)

func (s DriverState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHoming:
		return "homing"
	case StateProbe:
		return "probe"
	case StateStop:
		return "stop"
	default:
		return "unknown"
	}
}

// StatusUpdate is the payload the driver reports on its status event
// stream: axis positions plus a line number relative to the currently
// executing segment (spec.md §6, §4.7).
type StatusUpdate struct {
	Pos  Position
	Line int
}

// Driver is the Go expression of spec.md §6's driver contract. The
// interpreter never talks to the physical motor controller directly; it
// only ever calls through this interface, which a real transport or a test
// fake (internal/drivertest.Fake) implements.
type Driver interface {
	// RunSegment submits a newline-joined G-code segment for execution.
	// Submission is non-blocking: it returns once the driver has accepted
	// the segment, not once motion completes.
	RunSegment(segment string) error

	// Get reads one named driver parameter (e.g. "mpox", "1sa", "1tr").
	Get(ctx context.Context, key string) (float64, error)

	// GetMany reads several named driver parameters in one round trip.
	GetMany(ctx context.Context, keys []string) (map[string]float64, error)

	// Set writes one named driver parameter.
	Set(ctx context.Context, key string, value float64) error

	// ExpectStateChange blocks until the driver reports a transition into
	// one of the given states, and returns which one. Passing StateStop
	// alone is how the engine awaits the running→stop transition after a
	// flush (spec.md §5's sole suspension-point shape besides a breaking
	// handler's own Get/Set calls).
	ExpectStateChange(ctx context.Context, states ...DriverState) (DriverState, error)

	// Events returns the driver's status update stream. The channel is
	// closed when the driver disconnects.
	Events() <-chan StatusUpdate
}

// MachineStateName is one of the runtime lifecycle states a Machine
// collaborator tracks for this runtime instance (spec.md §6).
type MachineStateName string

const (
	MachineIdle    MachineStateName = "idle"
	MachineRunning MachineStateName = "running"
	MachineManual  MachineStateName = "manual"
	MachinePaused  MachineStateName = "paused"
	MachineStopped MachineStateName = "stopped"
)

// Machine is the Go expression of spec.md §6's machine contract: the
// process manager's view of this runtime's lifecycle and merged status.
type Machine interface {
	SetState(name MachineStateName)
	PublishStatus(update StatusUpdate)
}
