package sbp

// Settings mirrors spec.md §3's mutable settings record. It is owned by a
// single Runtime instance; never a package-level singleton (§9).
type Settings struct {
	MoveXYSpeed float64
	MoveZSpeed  float64
	MoveASpeed  float64
	MoveBSpeed  float64
	MoveCSpeed  float64

	JogXYSpeed float64
	JogZSpeed  float64
	JogASpeed  float64
	JogBSpeed  float64
	JogCSpeed  float64

	CutterDia     float64
	PocketOverlap float64 // percent, 0..100

	SafeZPullUp float64
	SafeAPullUp float64
	PlungeDir   float64
}

// DefaultSettings returns settings plausible for a ShopBot-class machine.
func DefaultSettings() Settings {
	return Settings{
		MoveXYSpeed: 3.0,
		MoveZSpeed:  1.0,
		MoveASpeed:  3.0,
		MoveBSpeed:  3.0,
		MoveCSpeed:  3.0,

		JogXYSpeed: 6.0,
		JogZSpeed:  2.0,
		JogASpeed:  6.0,
		JogBSpeed:  6.0,
		JogCSpeed:  6.0,

		CutterDia:     0.25,
		PocketOverlap: 25.0,

		SafeZPullUp: 1.0,
		SafeAPullUp: 1.0,
		PlungeDir:   1.0,
	}
}

// MoveSpeed returns the configured feed for a move on axis a.
func (s *Settings) MoveSpeed(a Axis) float64 {
	switch a {
	case AxisX, AxisY:
		return s.MoveXYSpeed
	case AxisZ:
		return s.MoveZSpeed
	case AxisA:
		return s.MoveASpeed
	case AxisB:
		return s.MoveBSpeed
	case AxisC:
		return s.MoveCSpeed
	default:
		return s.MoveXYSpeed
	}
}

// JogSpeed returns the configured rapid speed for a jog on axis a.
func (s *Settings) JogSpeed(a Axis) float64 {
	switch a {
	case AxisX, AxisY:
		return s.JogXYSpeed
	case AxisZ:
		return s.JogZSpeed
	case AxisA:
		return s.JogASpeed
	case AxisB:
		return s.JogBSpeed
	case AxisC:
		return s.JogCSpeed
	default:
		return s.JogXYSpeed
	}
}

// SetMoveSpeed updates the feed used for moves on axis a.
func (s *Settings) SetMoveSpeed(a Axis, v float64) {
	switch a {
	case AxisX, AxisY:
		s.MoveXYSpeed = v
	case AxisZ:
		s.MoveZSpeed = v
	case AxisA:
		s.MoveASpeed = v
	case AxisB:
		s.MoveBSpeed = v
	case AxisC:
		s.MoveCSpeed = v
	}
}

// SetJogSpeed updates the rapid speed used for jogs on axis a.
func (s *Settings) SetJogSpeed(a Axis, v float64) {
	switch a {
	case AxisX, AxisY:
		s.JogXYSpeed = v
	case AxisZ:
		s.JogZSpeed = v
	case AxisA:
		s.JogASpeed = v
	case AxisB:
		s.JogBSpeed = v
	case AxisC:
		s.JogCSpeed = v
	}
}

// StepOver returns the pocket step-over distance implied by the current
// cutter diameter and overlap percentage (§4.5, CG option 2 / CR option 2/3).
func (s *Settings) StepOver() float64 {
	return s.CutterDia * (1 - s.PocketOverlap/100)
}

// feedPerMinute converts an axis speed (units/s) to the G-code F value
// (units/min), per §6: "mm/min = speed × 60".
func feedPerMinute(speed float64) float64 {
	return speed * 60
}
