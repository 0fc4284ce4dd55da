package sbp

import "fmt"

// Axis names one of the six OpenSBP motion axes.
type Axis byte

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisA
	AxisB
	AxisC
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisA:
		return "A"
	case AxisB:
		return "B"
	case AxisC:
		return "C"
	default:
		return fmt.Sprintf("Axis(%d)", byte(a))
	}
}

// Position is a snapshot of all six axes, either the interpreter's own
// commanded position (cmd_pos in spec.md §3) or a driver-reported one.
type Position struct {
	X, Y, Z, A, B, C float64
}

func (p Position) String() string {
	return fmt.Sprintf("{x:%g y:%g z:%g a:%g b:%g c:%g}", p.X, p.Y, p.Z, p.A, p.B, p.C)
}

func (p Position) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	case AxisA:
		return p.A
	case AxisB:
		return p.B
	case AxisC:
		return p.C
	default:
		panic(fmt.Sprintf("unexpected axis: %d", byte(a)))
	}
}

func (p *Position) Set(a Axis, v float64) {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	case AxisZ:
		p.Z = v
	case AxisA:
		p.A = v
	case AxisB:
		p.B = v
	case AxisC:
		p.C = v
	default:
		panic(fmt.Sprintf("unexpected axis: %d", byte(a)))
	}
}
