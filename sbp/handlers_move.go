package sbp

import (
	"fmt"
	"math"
)

// registerMoveHandlers wires MX..MC, M2..M6, MH, MS (spec.md §4.5, "Move
// family" and "Modal moves").
func registerMoveHandlers(r *Registry) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC} {
		axis := a
		r.register(Handler{
			Mnemonic: "M" + axis.String(),
			Args:     []ArgSpec{{Name: "dist", Required: true}},
			NonBreaking: func(rt *Runtime, args HandlerArgs) error {
				return emitSingleAxisMove(rt, axis, args[0])
			},
		})
	}

	modalAxes := map[string][]Axis{
		"M2": {AxisX, AxisY},
		"M3": {AxisX, AxisY, AxisZ},
		"M4": {AxisX, AxisY, AxisZ, AxisA},
		"M5": {AxisX, AxisY, AxisZ, AxisA, AxisB},
		"M6": {AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC},
	}
	for mnem, axes := range modalAxes {
		axes := axes
		specs := make([]ArgSpec, len(axes))
		for i, a := range axes {
			specs[i] = ArgSpec{Name: a.String(), Required: false, Default: math.NaN()}
		}
		r.register(Handler{
			Mnemonic: mnem,
			Args:     specs,
			NonBreaking: func(rt *Runtime, args HandlerArgs) error {
				return emitModalMove(rt, axes, args)
			},
		})
	}

	r.register(Handler{
		Mnemonic: "MH",
		Args:     nil,
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			pos := rt.CmdPos()
			pos.X, pos.Y = 0, 0
			rt.Emit("G0X0Y0")
			rt.SetCmdPos(pos)
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "MS",
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
}

// emitSingleAxisMove implements MX/MY/MZ/MA/MB/MC: a single-axis G1 at the
// axis-appropriate feed, in mm/min (§6, "speed × 60").
func emitSingleAxisMove(rt *Runtime, axis Axis, dist float64) error {
	feed := feedPerMinute(rt.Settings().MoveSpeed(axis))
	rt.Emit(fmt.Sprintf("G1%s%s F%s", axis, formatNumber(dist), formatNumber(feed)))
	pos := rt.CmdPos()
	pos.Set(axis, dist)
	rt.SetCmdPos(pos)
	return nil
}

// emitModalMove implements M2..M6: a single G1 carrying every supplied axis
// letter. Omitted axes (NaN) neither emit a letter nor mutate cmd_pos
// (spec.md §4.5). A bare "G1F<feed>" with no axis letters is valid when
// every arg is omitted (spec.md §8 boundary case, for M2).
func emitModalMove(rt *Runtime, axes []Axis, args HandlerArgs) error {
	axisPart := ""
	pos := rt.CmdPos()
	any := false
	for i, axis := range axes {
		if math.IsNaN(args[i]) {
			continue
		}
		any = true
		axisPart += axis.String() + formatNumber(args[i])
		pos.Set(axis, args[i])
	}
	feed := feedPerMinute(rt.Settings().MoveXYSpeed)
	if axisPart == "" {
		rt.Emit(fmt.Sprintf("G1F%s", formatNumber(feed)))
	} else {
		rt.Emit(fmt.Sprintf("G1%s F%s", axisPart, formatNumber(feed)))
	}
	if any {
		rt.SetCmdPos(pos)
	}
	return nil
}
