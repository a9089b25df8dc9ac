package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/grad/internal/autodiff"
)

func TestTrace_ArithmeticChain(t *testing.T) {
	a := autodiff.NewValue(2.0, "a")
	b := autodiff.NewValue(-3.0, "b")
	c := autodiff.NewValue(10.0, "c")
	e := a.Mul(b).SetLabel("e")
	d := e.Add(c).SetLabel("d")
	f := autodiff.NewValue(-2.0, "f")
	L := d.Mul(f).SetLabel("L")

	g := autodiff.Trace(L)

	assert.Same(t, L, g.Root)
	assert.Len(t, g.Nodes, 7)
	assert.ElementsMatch(t, []autodiff.Edge{
		{From: a, To: e},
		{From: b, To: e},
		{From: e, To: d},
		{From: c, To: d},
		{From: d, To: L},
		{From: f, To: L},
	}, g.Edges)
	assert.ElementsMatch(t, []*autodiff.Value{a, b, c, f}, g.Leaves())
}

func TestTrace_DuplicateOperandSingleEdge(t *testing.T) {
	a := autodiff.NewValue(3, "a")
	sq := a.Mul(a)

	g := autodiff.Trace(sq)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, []autodiff.Edge{{From: a, To: sq}}, g.Edges)
}

func TestTrace_ReadOnly(t *testing.T) {
	a := autodiff.NewValue(2, "a")
	out := a.Exp().Tanh()
	out.Backward()
	before := autodiff.Gradients(out)

	g := autodiff.Trace(out)

	assert.Equal(t, before, autodiff.Gradients(out))
	assert.True(t, g.Contains(a))
	assert.False(t, g.Contains(autodiff.Scalar(2)))
}

func TestTrace_Nil(t *testing.T) {
	g := autodiff.Trace(nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
