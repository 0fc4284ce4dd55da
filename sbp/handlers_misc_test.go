package sbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEPSubmitsProbeMoveAndAwaitsCompletion(t *testing.T) {
	d := newValuesDriver(nil)
	rt := NewRuntime(d)
	dispatchBreaking(t, rt, "EP", -0.5)
	require.Equal(t, []string{"G38.2 Z-0.5"}, d.segments)
	// EP's move is submitted directly to the driver, not buffered into the
	// pending chunk, since the handler itself must block until it completes.
	assert.Empty(t, rt.chunk.Lines())
}

func TestC6StartsSpindleAndCoolant(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "C6")
	assert.Equal(t, []string{"M3", "M8"}, rt.chunk.Lines())
}

func TestC7StopsSpindleAndCoolant(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "C7")
	assert.Equal(t, []string{"M5", "M9"}, rt.chunk.Lines())
}

func TestSASetsAbsoluteMode(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "SA")
	assert.Equal(t, []string{"G90"}, rt.chunk.Lines())
}

func TestSRSetsIncrementalMode(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "SR")
	assert.Equal(t, []string{"G91"}, rt.chunk.Lines())
}

func TestSTSelectsWorkOffset(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "ST")
	assert.Equal(t, []string{"G54"}, rt.chunk.Lines())
}
