package sbp

import (
	"context"
	"fmt"
	"math"
)

// registerJogHandlers wires JX..JC, J2..J6, JH, JS (spec.md §4.5, "Jog
// family"). Same shape as the move family but rapid (G0); JS additionally
// pushes the new speeds to the driver's per-axis velocity maxima, which is
// a driver write but fire-and-forget, so JS stays non-breaking.
func registerJogHandlers(r *Registry) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC} {
		axis := a
		r.register(Handler{
			Mnemonic: "J" + axis.String(),
			Args:     []ArgSpec{{Name: "dist", Required: true}},
			NonBreaking: func(rt *Runtime, args HandlerArgs) error {
				return emitSingleAxisJog(rt, axis, args[0])
			},
		})
	}

	modalAxes := map[string][]Axis{
		"J2": {AxisX, AxisY},
		"J3": {AxisX, AxisY, AxisZ},
		"J4": {AxisX, AxisY, AxisZ, AxisA},
		"J5": {AxisX, AxisY, AxisZ, AxisA, AxisB},
		"J6": {AxisX, AxisY, AxisZ, AxisA, AxisB, AxisC},
	}
	for mnem, axes := range modalAxes {
		axes := axes
		specs := make([]ArgSpec, len(axes))
		for i, a := range axes {
			specs[i] = ArgSpec{Name: a.String(), Default: math.NaN()}
		}
		r.register(Handler{
			Mnemonic: mnem,
			Args:     specs,
			NonBreaking: func(rt *Runtime, args HandlerArgs) error {
				return emitModalJog(rt, axes, args)
			},
		})
	}

	r.register(Handler{
		Mnemonic: "JH",
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			pos := rt.CmdPos()
			pos.X, pos.Y = 0, 0
			rt.Emit("G0X0Y0")
			rt.SetCmdPos(pos)
			return nil
		},
	})

	r.register(Handler{
		Mnemonic: "JS",
		Args: []ArgSpec{
			{Name: "xySpeed", Default: math.NaN()},
			{Name: "zSpeed", Default: math.NaN()},
			{Name: "aSpeed", Default: math.NaN()},
			{Name: "bSpeed", Default: math.NaN()},
			{Name: "cSpeed", Default: math.NaN()},
		},
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			axes := []Axis{AxisX, AxisZ, AxisA, AxisB, AxisC}
			driverKeys := map[Axis]string{
				AxisX: "xvm", AxisY: "yvm", AxisZ: "zvm",
				AxisA: "avm", AxisB: "bvm", AxisC: "cvm",
			}
			for i, a := range axes {
				if math.IsNaN(args[i]) {
					continue
				}
				rt.Settings().SetJogSpeed(a, args[i])
				if a == AxisX {
					rt.Settings().SetJogSpeed(AxisY, args[i])
				}
				pushJogVelocityMax(rt, a, args[i], driverKeys)
			}
			return nil
		},
	})
}

// pushJogVelocityMax writes the per-axis velocity maximum to the driver.
// This is still a synchronous call into Driver.Set, made on the goroutine
// running the statement loop (spec.md §5), but unlike a breaking handler it
// never calls ExpectStateChange, and a failed write is logged and
// swallowed rather than aborting the statement: the source's "fire and
// forget" becomes "don't let a settings write fail the whole move".
func pushJogVelocityMax(rt *Runtime, axis Axis, speed float64, keys map[Axis]string) {
	key, ok := keys[axis]
	if !ok {
		return
	}
	if err := rt.Driver().Set(context.Background(), key, speed); err != nil {
		rt.Logger().Warn("jog velocity max write failed", "key", key, "err", err)
	}
	if axis == AxisX {
		if err := rt.Driver().Set(context.Background(), "yvm", speed); err != nil {
			rt.Logger().Warn("jog velocity max write failed", "key", "yvm", "err", err)
		}
	}
}

// emitSingleAxisJog implements JX/JY/JZ/JA/JB/JC: single-axis rapid.
func emitSingleAxisJog(rt *Runtime, axis Axis, dist float64) error {
	rt.Emit(fmt.Sprintf("G0%s%s", axis, formatNumber(dist)))
	pos := rt.CmdPos()
	pos.Set(axis, dist)
	rt.SetCmdPos(pos)
	return nil
}

// emitModalJog implements J2..J6: a single G0 carrying every supplied axis.
func emitModalJog(rt *Runtime, axes []Axis, args HandlerArgs) error {
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
	if axisPart == "" {
		rt.Emit("G0")
	} else {
		rt.Emit("G0" + axisPart)
	}
	if any {
		rt.SetCmdPos(pos)
	}
	return nil
}
