package sbp

import (
	"context"
	"fmt"
	"math"
)

// registerSettingsHandlers wires VA, VC, VD, VL, VN, VP, VR, VS, VU
// (spec.md §4.5, "Settings"). VA sets pocket overlap percentage, VC sets
// cutter diameter, VS updates move feeds exactly like MS, VU recomputes a
// motor's steps-per-unit parameter from the driver (breaking). VD, VL, VN,
// VP, and VR have no effect in the source this spec is grounded on and are
// preserved here as registered no-ops, per spec.md §4.5 and §9. VA breaks
// (spec.md §4.2: "Zero commands, probe, VA, VU all break") even though it
// only mutates local settings and never touches the driver itself — the
// flush-and-await that precedes every breaking statement still matters here
// so a subsequent CG/CR's pocket math never runs ahead of in-flight motion
// that a prior VA is meant to take effect after.
func registerSettingsHandlers(r *Registry) {
	r.register(Handler{
		Mnemonic: "VA",
		Args:     []ArgSpec{{Name: "pocketOverlap", Required: true}},
		Breaking: func(ctx context.Context, rt *Runtime, args HandlerArgs) error {
			rt.Settings().PocketOverlap = args[0]
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "VC",
		Args:     []ArgSpec{{Name: "cutterDia", Required: true}},
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			rt.Settings().CutterDia = args[0]
			return nil
		},
	})

	for _, mnem := range []string{"VD", "VL", "VN", "VP", "VR"} {
		mnem := mnem
		r.register(Handler{
			Mnemonic: mnem,
			Args: []ArgSpec{
				{Name: "a", Default: math.NaN()},
				{Name: "b", Default: math.NaN()},
			},
			NonBreaking: func(rt *Runtime, args HandlerArgs) error {
				return nil
			},
		})
	}

	r.register(Handler{
		Mnemonic: "VS",
		Args: []ArgSpec{
			{Name: "xySpeed", Default: math.NaN()},
			{Name: "zSpeed", Default: math.NaN()},
			{Name: "aSpeed", Default: math.NaN()},
			{Name: "bSpeed", Default: math.NaN()},
			{Name: "cSpeed", Default: math.NaN()},
		},
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			axes := []Axis{AxisX, AxisZ, AxisA, AxisB, AxisC}
			for i, a := range axes {
				if !math.IsNaN(args[i]) {
					rt.Settings().SetMoveSpeed(a, args[i])
				}
			}
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "VU",
		Args:     []ArgSpec{{Name: "motor", Required: true}},
		Breaking: func(ctx context.Context, rt *Runtime, args HandlerArgs) error {
			return recalcUnits(ctx, rt, int(args[0]))
		},
	})
}

// recalcUnits reads a motor's steps-per-revolution (sa), microstep setting
// (mi), and current steps-per-unit (tr), computes a new tr, and writes it
// back (spec.md:125, "VU ... reads per-motor Nsa/Nmi/Ntr from the driver,
// computes new Ntr, and writes it back — breaking"). The prior tr is read
// for parity with that read set and to skip the write when it already
// matches the recomputed value.
func recalcUnits(ctx context.Context, rt *Runtime, motor int) error {
	saKey := fmt.Sprintf("%dsa", motor)
	miKey := fmt.Sprintf("%dmi", motor)
	trKey := fmt.Sprintf("%dtr", motor)
	values, err := rt.Driver().GetMany(ctx, []string{saKey, miKey, trKey})
	if err != nil {
		return &DriverError{Op: "GetMany", Err: err}
	}
	sa, ok1 := values[saKey]
	mi, ok2 := values[miKey]
	prevTr, ok3 := values[trKey]
	if !ok1 || !ok2 || !ok3 {
		return &DriverError{Op: "GetMany", Err: fmt.Errorf("missing %s/%s/%s response", saKey, miKey, trKey)}
	}
	tr := sa * mi
	if tr == prevTr {
		return nil
	}
	if err := rt.Driver().Set(ctx, trKey, tr); err != nil {
		return &DriverError{Op: "Set", Err: err}
	}
	return nil
}
