package sbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutCircleOption1EmitsSingleArc(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CG", 10, 0, 5, 0, 2, 1, 0, 1, 1, 1, 1, 1, 0)
	assert.Equal(t, []string{"G2X10Y0I5J0 Z0"}, rt.chunk.Lines())
	assert.Equal(t, Position{X: 10, Y: 0, Z: 0}, rt.CmdPos())
}

// Option is read from args[10]; a regression against reading the wrong
// index would make option 1 and option 2 produce identical output.
func TestCutCircleOptionIndexSelectsDistinctBehavior(t *testing.T) {
	rt1 := newTestRuntime()
	dispatchNonBreaking(t, rt1, "CG", 10, 0, 5, 0, 2, 1, 0, 1, 1, 1, 1, 1, 0)

	rt2 := newTestRuntime()
	dispatchNonBreaking(t, rt2, "CG", 10, 0, 5, 0, 2, 1, 0, 1, 1, 1, 2, 1, 0)

	assert.NotEqual(t, rt1.chunk.Lines(), rt2.chunk.Lines())
}

// Same depth arithmetic as spec.md §8's spiral-plunge scenario, cut here
// with option 1 (plain I/J arcs): 4 reps of a 0.25 plunge each drive z to
// startZ-1.0, then a single pull-up line returns to startZ.
func TestCutCircleFourRepsThenPullsUpToStartZ(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CG", 10, 0, 0, 0, 2, 1, 0.25, 4, 1, 1, 1, 0, 0)

	lines := rt.chunk.Lines()
	require.Len(t, lines, 5)
	assert.Equal(t, "G2X10Y0I0J0 Z-0.25", lines[0])
	assert.Equal(t, "G2X10Y0I0J0 Z-0.5", lines[1])
	assert.Equal(t, "G2X10Y0I0J0 Z-0.75", lines[2])
	assert.Equal(t, "G2X10Y0I0J0 Z-1", lines[3])
	assert.Equal(t, "G0Z0", lines[4])
	assert.Equal(t, 0.0, rt.CmdPos().Z)
}

func TestCutCircleNoPullUpSkipsFinalLift(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CG", 10, 0, 0, 0, 2, 1, 0.25, 2, 1, 1, 1, 1, 0)
	lines := rt.chunk.Lines()
	for _, l := range lines {
		assert.NotContains(t, l, "G0Z")
	}
}

func TestCutCircleOption2PocketStepsInward(t *testing.T) {
	rt := newTestRuntime()
	rt.Settings().CutterDia = 2
	rt.Settings().PocketOverlap = 0
	dispatchNonBreaking(t, rt, "CG", 10, 0, 5, 0, 2, 1, 0, 1, 1, 1, 2, 1, 0)
	lines := rt.chunk.Lines()
	// 3 passes; the first two are followed by a lift/jog/lower transition
	// back down to the next pass, so the arcs land at indices 0, 4, 8.
	require.Len(t, lines, 9)
	assert.Equal(t, "G2X10Y0I5J0", lines[0])
	assert.Equal(t, "G2X10Y0I3J0", lines[4])
	assert.Equal(t, "G2X10Y0I1J0", lines[8])
}

func TestCutRectangleDefaultSquareRoundTripsToStart(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CR", 10, 5, 2, 1, 1, 0, 1, 1, 0, 0, 2, 0)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 5)
	assert.Equal(t, "G1X0Y0Z0 F180", lines[0])
	assert.Equal(t, "G1X10Y0Z0", lines[1])
	assert.Equal(t, "G1X10Y5Z0", lines[2])
	assert.Equal(t, "G1X0Y5Z0", lines[3])
	assert.Equal(t, "G1X0Y0Z0", lines[4])
	assert.Equal(t, Position{}, rt.CmdPos())
}

func TestCutRectangleStartCornerZeroCentersOnStart(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CR", 8, 8, 2, 1, 0, 0, 1, 1, 0, 0, 2, 0)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 5)
	assert.Equal(t, "G1X-4Y-4Z0 F180", lines[0])
	assert.Equal(t, "G1X4Y-4Z0", lines[1])
	assert.Equal(t, "G1X4Y4Z0", lines[2])
	assert.Equal(t, "G1X-4Y4Z0", lines[3])
}

func TestCutRectangleRotationAngleRotatesEveryVertex(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CR", 10, 5, 2, 1, 1, 0, 1, 1, 0, 90, 2, 0)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 5)
	assert.Equal(t, "G1X0Y0Z0 F180", lines[0])
	assert.Equal(t, "G1X0Y-10Z0", lines[1])
	assert.Equal(t, "G1X5Y-10Z0", lines[2])
	assert.Equal(t, "G1X5Y0Z0", lines[3])
	assert.Equal(t, "G1X0Y0Z0", lines[4])
}

func TestCutRectangleOption3FirstPassFullyShrunkToCenter(t *testing.T) {
	rt := newTestRuntime()
	rt.Settings().CutterDia = 2
	rt.Settings().PocketOverlap = 0
	dispatchNonBreaking(t, rt, "CR", 8, 8, 2, 1, 0, 0, 1, 3, 0, 0, 2, 0)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 15)
	assert.Equal(t, "G1X0Y0Z0 F180", lines[0])
}

func TestCutRectangleOption2FirstPassIsUnshrunk(t *testing.T) {
	rt := newTestRuntime()
	rt.Settings().CutterDia = 2
	rt.Settings().PocketOverlap = 0
	dispatchNonBreaking(t, rt, "CR", 8, 8, 2, 1, 0, 0, 1, 2, 0, 0, 2, 0)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 15)
	assert.Equal(t, "G1X-4Y-4Z0 F180", lines[0])
}

func TestCutRectangleSpiralPlungeDistributesDepthAcrossVertices(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "CR", 10, 5, 2, 1, 1, 4, 1, 1, 0, 0, 2, 1)
	lines := rt.chunk.Lines()
	require.Len(t, lines, 6)
	assert.Equal(t, "G1X0Y0Z-1 F180", lines[0])
	assert.Equal(t, "G1X10Y0Z-2", lines[1])
	assert.Equal(t, "G1X10Y5Z-3", lines[2])
	assert.Equal(t, "G1X0Y5Z-4", lines[3])
	assert.Equal(t, "G1X0Y0Z-4", lines[4])
	assert.Equal(t, "G0Z0", lines[5])
}
