package sbp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime() *Runtime {
	return NewRuntime(nil)
}

func dispatchNonBreaking(t *testing.T, rt *Runtime, mnemonic string, args ...float64) {
	t.Helper()
	h, ok := rt.registry.Lookup(mnemonic)
	require.True(t, ok, "no handler for %s", mnemonic)
	require.NoError(t, h.NonBreaking(rt, HandlerArgs(args)))
}

func TestSingleAxisMoveEmitsFeedAndUpdatesCmdPos(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "MX", 10)
	assert.Equal(t, []string{"G1X10 F180"}, rt.chunk.Lines())
	assert.Equal(t, 10.0, rt.CmdPos().X)
}

func TestModalMoveOmittedAxesLeaveCmdPosUntouched(t *testing.T) {
	rt := newTestRuntime()
	rt.SetCmdPos(Position{X: 1, Y: 2})
	h, ok := rt.registry.Lookup("M2")
	require.True(t, ok)
	require.NoError(t, h.NonBreaking(rt, HandlerArgs{5, math.NaN()}))
	assert.Equal(t, []string{"G1X5 F180"}, rt.chunk.Lines())
	assert.Equal(t, 5.0, rt.CmdPos().X)
	assert.Equal(t, 2.0, rt.CmdPos().Y)
}

func TestModalMoveBareFeedWhenAllAxesOmitted(t *testing.T) {
	rt := newTestRuntime()
	h, ok := rt.registry.Lookup("M2")
	require.True(t, ok)
	require.NoError(t, h.NonBreaking(rt, HandlerArgs{math.NaN(), math.NaN()}))
	assert.Equal(t, []string{"G1F180"}, rt.chunk.Lines())
}

func TestMHJogsHomeXY(t *testing.T) {
	rt := newTestRuntime()
	rt.SetCmdPos(Position{X: 5, Y: 5})
	h, ok := rt.registry.Lookup("MH")
	require.True(t, ok)
	require.NoError(t, h.NonBreaking(rt, nil))
	assert.Equal(t, []string{"G0X0Y0"}, rt.chunk.Lines())
	assert.Equal(t, 0.0, rt.CmdPos().X)
	assert.Equal(t, 0.0, rt.CmdPos().Y)
}

func TestMSUpdatesMoveSpeedsForSuppliedAxesOnly(t *testing.T) {
	rt := newTestRuntime()
	dispatchNonBreaking(t, rt, "MS", 9, math.NaN(), math.NaN(), math.NaN(), math.NaN())
	assert.Equal(t, 9.0, rt.Settings().MoveXYSpeed)
	assert.Equal(t, 1.0, rt.Settings().MoveZSpeed)
}
