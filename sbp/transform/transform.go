// Package transform holds pure 2D/3D point transforms (rotate, shear,
// scale, translate) for toolpath geometry (spec.md §4.8); the cut handlers
// use Rotate for CR's rotated rectangles. Every function takes and returns
// a Point; none touches runtime state, grounded on leftmike-gcode/arc.go's
// pure-trigonometry approach to arc interpolation.
package transform

import "math"

// Point is a position in the XY plane plus Z.
type Point struct {
	X, Y, Z float64
}

// Rotate rotates p by angleDeg about (cx, cy), CW positive (spec.md §4.8:
// "convert to radians with sign inversion (CW positive)"). Z is untouched.
// angleDeg is normalized into (-360, 360) before conversion.
func Rotate(p Point, angleDeg, cx, cy float64) Point {
	angleDeg = normalizeAngle(angleDeg)
	rad := -angleDeg * math.Pi / 180
	dx, dy := p.X-cx, p.Y-cy
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Point{
		X: cx + dx*cos - dy*sin,
		Y: cy + dx*sin + dy*cos,
		Z: p.Z,
	}
}

func normalizeAngle(deg float64) float64 {
	for deg >= 360 {
		deg -= 360
	}
	for deg <= -360 {
		deg += 360
	}
	return deg
}

// ShearX adds a tan-approximated shear along X proportional to Y: shear =
// -angleDeg*pi/180 * Y (spec.md §4.8).
func ShearX(p Point, angleDeg float64) Point {
	p.X += -angleDeg * math.Pi / 180 * p.Y
	return p
}

// ShearY adds a tan-approximated shear along Y proportional to X.
func ShearY(p Point, angleDeg float64) Point {
	p.Y += -angleDeg * math.Pi / 180 * p.X
	return p
}

// Scale scales p about (cx, cy) by (sx, sy). A scale factor of 1 leaves its
// axis untouched (spec.md §4.8: "components with scale=1 ... are
// untouched").
func Scale(p Point, sx, sy, cx, cy float64) Point {
	if sx != 1 {
		p.X = cx + (p.X-cx)*sx
	}
	if sy != 1 {
		p.Y = cy + (p.Y-cy)*sy
	}
	return p
}

// Translate adds (dx, dy, dz) to p. A zero offset leaves its axis untouched,
// which for float addition is a no-op either way, but mirrors the source's
// explicit "where non-zero" guard (spec.md §4.8).
func Translate(p Point, dx, dy, dz float64) Point {
	if dx != 0 {
		p.X += dx
	}
	if dy != 0 {
		p.Y += dy
	}
	if dz != 0 {
		p.Z += dz
	}
	return p
}
