package sbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStatus struct{ pos Position }

func (f fixedStatus) Position() Position { return f.pos }

func TestEvalNumberLit(t *testing.T) {
	v, st, err := Eval(NumberLit(3.5), EvalContext{})
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	assert.False(t, st.SysVarEvaluated)
}

func TestEvalUserVarRef(t *testing.T) {
	ctx := EvalContext{Vars: map[string]float64{"a": 7}}
	v, _, err := Eval(UserVarRef{Name: "a"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestEvalUndefinedUserVar(t *testing.T) {
	_, _, err := Eval(UserVarRef{Name: "missing"}, EvalContext{Vars: map[string]float64{}})
	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestEvalSysVarSetsFlag(t *testing.T) {
	ctx := EvalContext{Status: fixedStatus{pos: Position{X: 7.5}}, Settings: &Settings{}}
	v, st, err := Eval(SysVarRef{Selector: 1}, ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)
	assert.True(t, st.SysVarEvaluated)
}

func TestEvalSysVarUnknownSelector(t *testing.T) {
	ctx := EvalContext{Status: fixedStatus{}, Settings: &Settings{}}
	_, _, err := Eval(SysVarRef{Selector: 9999}, ctx)
	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestEvalBinaryArithmetic(t *testing.T) {
	e := BinaryExpr{Op: OpAdd, Left: NumberLit(2), Right: NumberLit(3)}
	v, _, err := Eval(e, EvalContext{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvalDivideByZero(t *testing.T) {
	e := BinaryExpr{Op: OpDiv, Left: NumberLit(1), Right: NumberLit(0)}
	_, _, err := Eval(e, EvalContext{})
	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestEvalComparisonReturnsBoolNum(t *testing.T) {
	e := BinaryExpr{Op: OpLT, Left: NumberLit(1), Right: NumberLit(2)}
	v, _, err := Eval(e, EvalContext{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEvalNestedSysVarPropagatesFlag(t *testing.T) {
	ctx := EvalContext{Status: fixedStatus{pos: Position{X: 2}}, Settings: &Settings{}}
	e := BinaryExpr{Op: OpAdd, Left: NumberLit(1), Right: SysVarRef{Selector: 1}}
	v, st, err := Eval(e, ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.True(t, st.SysVarEvaluated)
}

func TestContainsSysVarRef(t *testing.T) {
	assert.True(t, containsSysVarRef(BinaryExpr{Op: OpAdd, Left: NumberLit(1), Right: SysVarRef{Selector: 1}}))
	assert.False(t, containsSysVarRef(BinaryExpr{Op: OpAdd, Left: NumberLit(1), Right: NumberLit(2)}))
}
