package sbp

import (
	"fmt"
	"math"

	"github.com/shopbot/sbp-runtime/sbp/transform"
)

// registerCutHandlers wires CG (cut circle/arc) and CR (cut rectangle/
// pocket) (spec.md §4.5). Both synthesize multi-line toolpaths into the
// chunk buffer from a handful of geometry args; neither talks to the
// driver, so both are non-breaking.
func registerCutHandlers(r *Registry) {
	r.register(Handler{
		Mnemonic: "CG",
		Args: []ArgSpec{
			{Name: "endX", Default: math.NaN()},
			{Name: "endY", Default: math.NaN()},
			{Name: "centerXoffset", Default: 0},
			{Name: "centerYoffset", Default: 0},
			{Name: "iot", Default: 2},
			{Name: "direction", Default: 1},
			{Name: "plunge", Default: 0},
			{Name: "reps", Default: 1},
			{Name: "propX", Default: 1},
			{Name: "propY", Default: 1},
			{Name: "option", Default: 1},
			{Name: "noPullUp", Default: 0},
			{Name: "plungeFromZero", Default: 0},
		},
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			return cutCircle(rt, args)
		},
	})

	r.register(Handler{
		Mnemonic: "CR",
		Args: []ArgSpec{
			{Name: "lenX", Required: true},
			{Name: "lenY", Required: true},
			{Name: "iot", Default: 2},
			{Name: "direction", Default: 1},
			{Name: "startCorner", Default: 1},
			{Name: "plunge", Default: 0},
			{Name: "reps", Default: 1},
			{Name: "option", Default: 1},
			{Name: "plungeFromZero", Default: 0},
			{Name: "rotationAngle", Default: 0},
			{Name: "plungeAxis", Default: float64(AxisZ)},
			{Name: "spiralPlunge", Default: 0},
		},
		NonBreaking: func(rt *Runtime, args HandlerArgs) error {
			return cutRectangle(rt, args)
		},
	})
}

// cutterCompOffset maps the iot arg (0=I inside, 1=O outside, anything else
// T traverse/no compensation) to a signed radius offset, for CG's circular
// geometry. The source passes I/O/T as a literal letter; this module's
// expression evaluator only produces numbers, so callers pass the numeric
// code directly (documented in DESIGN.md).
func cutterCompOffset(iot, radius float64) float64 {
	switch int(iot) {
	case 0:
		return -radius
	case 1:
		return radius
	default:
		return 0
	}
}

// cutterCompDelta is cutterCompOffset's counterpart for CR, which shifts a
// rectangle's side lengths by a full cutter diameter rather than a radius
// (spec.md §4.5: "Cutter compensation shifts lengths by ±cutterDia per
// I/O/T").
func cutterCompDelta(iot, dia float64) float64 {
	switch int(iot) {
	case 0:
		return -dia
	case 1:
		return dia
	default:
		return 0
	}
}

// plungePasses is the shared pocket pass-count formula (spec.md §4.5, CR's
// "number of steps = floor((min(lenX,lenY)/2)/stepOver)+1"), reused for
// CG's concentric pocket option with halfExtent set to the circle's radius.
func plungePasses(halfExtent, stepOver float64) int {
	if stepOver <= 0 {
		return 1
	}
	return int(math.Floor(halfExtent/stepOver)) + 1
}

// cutCircle implements CG (spec.md §4.5). Direction 1 emits G2 (CW), else
// G3 (CCW). Option 1 is a simple arc/circle with optional multi-pass
// plunge; option 2 is a concentric pocket cut outside-in using I/J; options
// 3 and 4 cut one spiral-plunge arc per rep using I/K (preserving the
// source's I/J-vs-I/K distinction verbatim, per spec.md §9's open
// question), with option 4 adding one flat finishing pass.
func cutCircle(rt *Runtime, args HandlerArgs) error {
	start := rt.CmdPos()
	endX, endY := args[0], args[1]
	if math.IsNaN(endX) {
		endX = start.X
	}
	if math.IsNaN(endY) {
		endY = start.Y
	}
	centerXoff, centerYoff := args[2]*args[8], args[3]*args[9]
	iot := args[4]
	direction := args[5]
	plunge := args[6]
	reps := args[7]
	if reps < 1 {
		reps = 1
	}
	option := int(args[10])
	noPullUp := args[11] != 0
	plungeFromZero := args[12] != 0

	radius := math.Hypot(centerXoff, centerYoff)
	offset := cutterCompOffset(iot, rt.Settings().CutterDia/2)
	if radius != 0 {
		scale := (radius + offset) / radius
		centerXoff *= scale
		centerYoff *= scale
		radius += offset
	}

	gLetter := "G3"
	if direction == 1 {
		gLetter = "G2"
	}

	startZ := start.Z
	z := startZ
	if plungeFromZero {
		z = 0
	}

	switch option {
	case 1:
		for i := 0; i < int(reps); i++ {
			z -= plunge
			rt.Emit(fmt.Sprintf("%sX%sY%sI%sJ%s Z%s", gLetter,
				formatNumber(endX), formatNumber(endY),
				formatNumber(centerXoff), formatNumber(centerYoff), formatNumber(z)))
		}

	case 2:
		stepOver := rt.Settings().StepOver()
		passes := plungePasses(radius, stepOver)
		for p := 0; p < passes; p++ {
			r := radius - float64(p)*stepOver
			if r < 0 {
				r = 0
			}
			scale := 0.0
			if radius != 0 {
				scale = r / radius
			}
			i, j := centerXoff*scale, centerYoff*scale
			rt.Emit(fmt.Sprintf("%sX%sY%sI%sJ%s", gLetter,
				formatNumber(endX), formatNumber(endY), formatNumber(i), formatNumber(j)))
			if p < passes-1 {
				rt.Emit(fmt.Sprintf("G0Z%s", formatNumber(startZ+rt.Settings().SafeZPullUp)))
				rt.Emit(fmt.Sprintf("G0X%sY%s", formatNumber(start.X), formatNumber(start.Y)))
				rt.Emit(fmt.Sprintf("G0Z%s", formatNumber(z)))
			}
		}

	case 3, 4:
		for i := 0; i < int(reps); i++ {
			z -= plunge
			rt.Emit(fmt.Sprintf("%sX%sY%sI%sK%s Z%s", gLetter,
				formatNumber(endX), formatNumber(endY),
				formatNumber(centerXoff), formatNumber(centerYoff), formatNumber(z)))
		}
		if option == 4 {
			rt.Emit(fmt.Sprintf("%sX%sY%sI%sJ%s", gLetter,
				formatNumber(endX), formatNumber(endY), formatNumber(centerXoff), formatNumber(centerYoff)))
		}
	}

	// Reps of options 1, 3 and 4 follow each other without a lift; option 2
	// lifts between its pocket passes above. The only lift left is this
	// final return to startZ, emitted whenever Z changed and noPullUp is 0.
	if !noPullUp && z != startZ {
		rt.Emit(fmt.Sprintf("G0Z%s", formatNumber(startZ)))
	}

	pos := start
	pos.X, pos.Y, pos.Z = endX, endY, startZ
	rt.SetCmdPos(pos)
	return nil
}

// axisFromIndex clamps an evaluated axis-index arg to a valid Axis,
// defaulting to Z (CR's plungeAxis, spec.md §4.5).
func axisFromIndex(i int) Axis {
	if i < int(AxisX) || i > int(AxisC) {
		return AxisZ
	}
	return Axis(i)
}

// rectangleCorners returns the 4 corners of a lenX×lenY rectangle anchored
// at (sx, sy), in CCW order starting at the corner startCorner selects.
// startCorner 0 centers the rectangle on (sx, sy) instead of anchoring a
// corner there (spec.md §8 boundary case: "visits corners symmetric about
// the start").
func rectangleCorners(sx, sy, lenX, lenY float64, startCorner int) []transform.Point {
	if startCorner == 0 {
		hx, hy := lenX/2, lenY/2
		return []transform.Point{
			{X: sx - hx, Y: sy - hy},
			{X: sx + hx, Y: sy - hy},
			{X: sx + hx, Y: sy + hy},
			{X: sx - hx, Y: sy + hy},
		}
	}
	signX, signY := 1.0, 1.0
	switch startCorner {
	case 2:
		signX = -1
	case 3:
		signX, signY = -1, -1
	case 4:
		signY = -1
	}
	pts := []transform.Point{
		{X: sx, Y: sy},
		{X: sx + signX*lenX, Y: sy},
		{X: sx + signX*lenX, Y: sy + signY*lenY},
		{X: sx, Y: sy + signY*lenY},
	}
	if signX*signY < 0 {
		// Corners 2 and 4 mirror the rectangle across one axis, which flips
		// the winding; reverse it so every start corner is visited CCW.
		return reverseCorners(pts)
	}
	return pts
}

// reverseCorners reverses visit order but keeps the start corner fixed, so
// direction (CW vs CCW) flips without moving the rapid-to-start point
// (spec.md §4.5: "vertex visit order is permuted so that direction ...
// is respected").
func reverseCorners(c []transform.Point) []transform.Point {
	out := make([]transform.Point, len(c))
	out[0] = c[0]
	for i := 1; i < len(c); i++ {
		out[i] = c[len(c)-i]
	}
	return out
}

// shrinkRectangle steps every corner in toward (cx, cy) by dist along each
// axis independently, producing a smaller similar rectangle for a pocket
// pass (spec.md §4.5, CR option 2/3 pocketing).
func shrinkRectangle(corners []transform.Point, cx, cy, dist float64) []transform.Point {
	out := make([]transform.Point, len(corners))
	for i, p := range corners {
		dx, dy := p.X-cx, p.Y-cy
		nx, ny := dx, dy
		switch {
		case dx > 0:
			nx = math.Max(0, dx-dist)
		case dx < 0:
			nx = math.Min(0, dx+dist)
		}
		switch {
		case dy > 0:
			ny = math.Max(0, dy-dist)
		case dy < 0:
			ny = math.Min(0, dy+dist)
		}
		out[i] = transform.Point{X: cx + nx, Y: cy + ny, Z: p.Z}
	}
	return out
}

// emitRectanglePass emits one closed perimeter pass: G1 to every corner in
// pts, rotated about (cx, cy) by rotation degrees, then back to the first
// corner. When spiral is set (only the very first pass of the very first
// rep), depth is distributed a quarter of plunge at a time across the 4
// corners instead of all landing at zAfter immediately (spec.md §4.5:
// "spiralPlunge distributes plunge across the 4 vertices of the first
// pass").
func emitRectanglePass(rt *Runtime, pts []transform.Point, rotation, cx, cy float64,
	axisLetter string, zBefore, zAfter, plunge float64, spiral bool) {
	fracs := [4]float64{0.25, 0.5, 0.75, 1.0}
	rotated := make([]transform.Point, len(pts)+1)
	for i, p := range pts {
		rotated[i] = transform.Rotate(p, rotation, cx, cy)
	}
	rotated[len(pts)] = rotated[0]

	feed := feedPerMinute(rt.Settings().MoveXYSpeed)
	for i, p := range rotated {
		z := zAfter
		if spiral && i < len(fracs) {
			z = zBefore - plunge*fracs[i]
		}
		if i == 0 {
			rt.Emit(fmt.Sprintf("G1X%sY%s%s%s F%s",
				formatNumber(p.X), formatNumber(p.Y), axisLetter, formatNumber(z), formatNumber(feed)))
		} else {
			rt.Emit(fmt.Sprintf("G1X%sY%s%s%s",
				formatNumber(p.X), formatNumber(p.Y), axisLetter, formatNumber(z)))
		}
	}
}

// cutRectangle implements CR (spec.md §4.5). lenX/lenY are first adjusted
// for cutter compensation, then the rectangle's corners are found from
// startCorner and reordered for direction; option selects a single pass,
// an outside-in pocket, or an inside-out pocket; rotationAngle rotates
// every emitted point about the rectangle's start point.
func cutRectangle(rt *Runtime, args HandlerArgs) error {
	start := rt.CmdPos()
	lenX, lenY := args[0], args[1]
	iot := args[2]
	direction := args[3]
	startCorner := int(args[4])
	plunge := args[5]
	reps := args[6]
	if reps < 1 {
		reps = 1
	}
	option := int(args[7])
	plungeFromZero := args[8] != 0
	rotation := args[9]
	plungeAxis := axisFromIndex(int(args[10]))
	spiralPlunge := args[11]

	delta := cutterCompDelta(iot, rt.Settings().CutterDia)
	lenX += delta
	lenY += delta

	corners := rectangleCorners(start.X, start.Y, lenX, lenY, startCorner)
	if direction != 1 {
		corners = reverseCorners(corners)
	}

	startDepth := start.Get(plungeAxis)
	z := startDepth
	if plungeFromZero {
		z = 0
	}

	stepOver := rt.Settings().StepOver()
	passes := 1
	if option == 2 || option == 3 {
		passes = plungePasses(math.Min(lenX, lenY)/2, stepOver)
	}

	axisLetter := plungeAxis.String()

	for rep := 0; rep < int(reps); rep++ {
		zBefore := z
		z -= plunge
		for pass := 0; pass < passes; pass++ {
			pts := corners
			if passes > 1 {
				dist := stepOver * float64(pass)
				if option == 3 {
					dist = stepOver * float64(passes-1-pass)
				}
				pts = shrinkRectangle(corners, start.X, start.Y, dist)
			}
			spiral := rep == 0 && pass == 0 && spiralPlunge != 0
			emitRectanglePass(rt, pts, rotation, start.X, start.Y, axisLetter, zBefore, z, plunge, spiral)
		}
		if rep < int(reps)-1 {
			rt.Emit(fmt.Sprintf("G0%s%s", axisLetter, formatNumber(startDepth+rt.Settings().SafeZPullUp)))
			rt.Emit(fmt.Sprintf("G0X%sY%s", formatNumber(start.X), formatNumber(start.Y)))
		}
	}

	if z != startDepth {
		rt.Emit(fmt.Sprintf("G0%s%s", axisLetter, formatNumber(startDepth)))
	}

	pos := start
	pos.Set(plungeAxis, startDepth)
	rt.SetCmdPos(pos)
	return nil
}
