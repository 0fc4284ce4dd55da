package sbp

import (
	"context"
	"fmt"
)

// registerMiscHandlers wires EP (probe), C6/C7 (spindle shortcuts), and
// SA/SR/ST (coordinate-mode) (spec.md §4.5). EP breaks (spec.md §4.2:
// "Zero commands, probe, VA, VU all break"): the probe move must run and
// complete before the engine resumes, so its handler submits the move
// directly rather than buffering it into the chunk.
func registerMiscHandlers(r *Registry) {
	r.register(Handler{
		Mnemonic: "EP",
		Args:     []ArgSpec{{Name: "depth", Required: true}},
		Breaking: func(ctx context.Context, rt *Runtime, args HandlerArgs) error {
			segment := fmt.Sprintf("G38.2 Z%s", formatNumber(args[0]))
			if err := rt.Driver().RunSegment(segment); err != nil {
				return &DriverError{Op: "RunSegment", Err: err}
			}
			if _, err := rt.Driver().ExpectStateChange(ctx, StateStop); err != nil {
				return &DriverError{Op: "ExpectStateChange", Err: err}
			}
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "C6",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Emit("M3")
			rt.Emit("M8")
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "C7",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Emit("M5")
			rt.Emit("M9")
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "SA",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Emit("G90")
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "SR",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Emit("G91")
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "ST",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Emit("G54")
			return nil
		},
	})
}
