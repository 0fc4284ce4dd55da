package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateRoundTrip(t *testing.T) {
	p := Point{X: 3, Y: 4, Z: 1}
	got := Rotate(Rotate(p, 37, 1, 2), -37, 1, 2)
	assert.InDelta(t, p.X, got.X, 1e-9)
	assert.InDelta(t, p.Y, got.Y, 1e-9)
	assert.Equal(t, p.Z, got.Z)
}

func TestTranslateRoundTrip(t *testing.T) {
	p := Point{X: 3, Y: 4, Z: 1}
	got := Translate(Translate(p, 5, -2, 7), -5, 2, -7)
	assert.Equal(t, p, got)
}

func TestScaleIdentityWhenFactorIsOne(t *testing.T) {
	p := Point{X: 3, Y: 4}
	got := Scale(p, 1, 1, 10, 10)
	assert.Equal(t, p, got)
}

func TestScaleAboutCenter(t *testing.T) {
	got := Scale(Point{X: 12, Y: 2}, 2, 1, 10, 0)
	assert.InDelta(t, 14, got.X, 1e-9)
	assert.InDelta(t, 2, got.Y, 1e-9)
}

func TestShearXProportionalToY(t *testing.T) {
	got := ShearX(Point{X: 0, Y: 10}, 0)
	assert.Equal(t, 0.0, got.X)

	// -45° over Y=10 shifts X by 45·π/180·10.
	got = ShearX(Point{X: 0, Y: 10}, -45)
	assert.InDelta(t, 7.853981633974483, got.X, 1e-9)
}
