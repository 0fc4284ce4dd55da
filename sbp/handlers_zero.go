package sbp

import (
	"context"
	"fmt"
	"strings"
)

// mpoKey returns the driver parameter name for axis's machine position,
// e.g. "mpox" (spec.md §4.5: "obtained via driver get('mpo*') calls").
func mpoKey(a Axis) string {
	return "mpo" + strings.ToLower(a.String())
}

// registerZeroHandlers wires ZX..ZC, Z2..Z6, ZT (spec.md §4.5, "Zero
// handlers"). All are breaking: each reads one or more machine-coordinate
// positions from the driver and writes a G55 work-coordinate offset.
func registerZeroHandlers(r *Registry) {
	single := map[string]Axis{
		"ZX": AxisX, "ZY": AxisY, "ZZ": AxisZ,
		"ZA": AxisA, "ZB": AxisB, "ZC": AxisC,
	}
	for mnem, axis := range single {
		axis := axis
		r.register(Handler{
			Mnemonic: mnem,
			Breaking: func(ctx context.Context, rt *Runtime, args HandlerArgs) error {
				return zeroAxes(ctx, rt, []Axis{axis})
			},
		})
	}

	multi := map[string][]Axis{
		"Z2": {AxisX, AxisY},
		"Z3": {AxisX, AxisY, AxisZ},
		"Z4": {AxisX, AxisY, AxisZ, AxisA},
		"Z5": {AxisX, AxisY, AxisZ, AxisA, AxisB},
		"Z6": {AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC},
		"ZT": {AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC},
	}
	for mnem, axes := range multi {
		axes := axes
		r.register(Handler{
			Mnemonic: mnem,
			Breaking: func(ctx context.Context, rt *Runtime, args HandlerArgs) error {
				return zeroAxes(ctx, rt, axes)
			},
		})
	}
}

// zeroAxes reads the machine-coordinate position of every axis in axes and
// sets the G55 work offset to that position in one combined G10 L2 P2 line
// (spec.md §4.5: "chain gets before emitting a combined G10 L2 P2 ...").
func zeroAxes(ctx context.Context, rt *Runtime, axes []Axis) error {
	keys := make([]string, len(axes))
	for i, a := range axes {
		keys[i] = mpoKey(a)
	}
	values, err := rt.Driver().GetMany(ctx, keys)
	if err != nil {
		return &DriverError{Op: "GetMany", Err: err}
	}

	line := "G10 L2 P2"
	for i, a := range axes {
		v, ok := values[keys[i]]
		if !ok {
			return &DriverError{Op: "GetMany", Err: fmt.Errorf("missing response for %s", keys[i])}
		}
		line += " " + a.String() + formatNumber(v)
	}
	rt.Emit(line)
	return nil
}
