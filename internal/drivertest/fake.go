// Package drivertest provides a scripted fake sbp.Driver for engine and
// handler tests, grounded on leftmike-gcode/engine_test.go's fake machine:
// calls are answered from preset values and recorded for the test to
// inspect, rather than hitting a real transport.
package drivertest

import (
	"context"
	"fmt"

	"github.com/shopbot/sbp-runtime/sbp"
)

// Fake is an in-memory sbp.Driver. Values lets a test preload driver
// parameter responses (for Get/GetMany); Segments and Sets record what the
// runtime actually sent. StateChanges is drained in order by
// ExpectStateChange; if it is empty, ExpectStateChange returns StateStop
// immediately so tests that don't care about state transitions don't block.
type Fake struct {
	Values map[string]float64

	Segments     []string
	Sets         []SetCall
	StateChanges []sbp.DriverState

	events chan sbp.StatusUpdate

	// FailRunSegment, when non-nil, is returned by the next RunSegment call.
	FailRunSegment error
}

// SetCall records one Driver.Set invocation.
type SetCall struct {
	Key   string
	Value float64
}

// New returns a Fake with its response table preset to values.
func New(values map[string]float64) *Fake {
	if values == nil {
		values = map[string]float64{}
	}
	return &Fake{Values: values, events: make(chan sbp.StatusUpdate, 1)}
}

func (f *Fake) RunSegment(segment string) error {
	if f.FailRunSegment != nil {
		err := f.FailRunSegment
		f.FailRunSegment = nil
		return err
	}
	f.Segments = append(f.Segments, segment)
	return nil
}

func (f *Fake) Get(ctx context.Context, key string) (float64, error) {
	v, ok := f.Values[key]
	if !ok {
		return 0, fmt.Errorf("drivertest: no preset value for %q", key)
	}
	return v, nil
}

func (f *Fake) GetMany(ctx context.Context, keys []string) (map[string]float64, error) {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		v, err := f.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (f *Fake) Set(ctx context.Context, key string, value float64) error {
	f.Sets = append(f.Sets, SetCall{Key: key, Value: value})
	f.Values[key] = value
	return nil
}

func (f *Fake) ExpectStateChange(ctx context.Context, states ...sbp.DriverState) (sbp.DriverState, error) {
	if len(f.StateChanges) == 0 {
		return sbp.StateStop, nil
	}
	next := f.StateChanges[0]
	f.StateChanges = f.StateChanges[1:]
	return next, nil
}

func (f *Fake) Events() <-chan sbp.StatusUpdate {
	return f.events
}

// Push delivers a status update on the Events channel, for tests that
// exercise StatusMirror against a Fake directly.
func (f *Fake) Push(u sbp.StatusUpdate) {
	f.events <- u
}
