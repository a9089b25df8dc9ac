package graphfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/grad/internal/autodiff"
)

func TestLoad_ArithmeticChain(t *testing.T) {
	doc, err := Load("testdata/arith.yaml")
	require.NoError(t, err)

	assert.Equal(t, "arithmetic-chain", doc.Name)
	assert.Equal(t, "L", doc.RootName())
	assert.Equal(t, map[string]float64{"a": 2, "b": -3, "c": 10, "f": -2}, doc.Leaves())

	b, err := doc.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, -8.0, b.Root.Data())
	assert.Equal(t, []string{"a", "b", "c", "f"}, b.Leaves)
	assert.Equal(t, []string{"a", "b", "c", "e", "d", "f", "L"}, b.Order)

	b.Root.Backward()
	want := map[string]float64{"L": 1, "f": 4, "d": -2, "c": -2, "e": -2, "a": 6, "b": -4}
	for name, g := range want {
		node, ok := b.Node(name)
		require.True(t, ok, name)
		assert.Equal(t, g, node.Grad(), name)
		assert.Equal(t, name, node.Label())
	}
}

func TestLoad_Neuron(t *testing.T) {
	doc, err := Load("testdata/neuron.yaml")
	require.NoError(t, err)

	b, err := doc.Build(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7071067811865476, b.Root.Data(), 1e-12)

	x1w1, _ := b.Node("x1w1")
	assert.Equal(t, "x1*w1", x1w1.Label())

	b.Root.Backward()
	b0, _ := b.Node("b")
	assert.InDelta(t, 0.5, b0.Grad(), 1e-9)
}

func TestBuild_Overrides(t *testing.T) {
	doc, err := Load("testdata/arith.yaml")
	require.NoError(t, err)

	b, err := doc.Build(map[string]float64{"a": 3})
	require.NoError(t, err)
	// (3*-3 + 10) * -2
	assert.Equal(t, -2.0, b.Root.Data())

	// The document itself is unchanged.
	assert.Equal(t, 2.0, doc.Leaves()["a"])

	_, err = doc.Build(map[string]float64{"e": 1})
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestBuild_FreshGraphs(t *testing.T) {
	doc, err := Load("testdata/arith.yaml")
	require.NoError(t, err)

	first, err := doc.Build(nil)
	require.NoError(t, err)
	second, err := doc.Build(nil)
	require.NoError(t, err)

	first.Root.Backward()
	a, _ := second.Node("a")
	assert.Zero(t, a.Grad())
	assert.NotSame(t, first.Root, second.Root)
}

func TestBuild_PowByNodeUnsupported(t *testing.T) {
	doc, err := Load("testdata/pow_node.yaml")
	require.NoError(t, err, "document is structurally valid")

	_, err = doc.Build(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrUnsupportedOperation))

	var nodeErr *NodeError
	require.True(t, errors.As(err, &nodeErr))
	assert.Equal(t, "y", nodeErr.Node)
}

func TestBuild_PowExponents(t *testing.T) {
	doc, err := Parse([]byte(`
nodes:
  - {name: x, value: 4}
  - {name: sq, op: pow, inputs: [x], exponent: 2}
  - {name: rt, op: pow, inputs: [sq], exponent: 0.5}
  - {name: inv, op: pow, inputs: [rt], exponent: -1}
`))
	require.NoError(t, err)

	b, err := doc.Build(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, b.Root.Data(), 1e-12)

	_, err = Parse([]byte(`
nodes:
  - {name: x, value: 4}
  - {name: y, op: pow, inputs: [x], exponent: two}
`))
	require.NoError(t, err)

	noExp, err := Parse([]byte(`
nodes:
  - {name: x, value: 4}
  - {name: y, op: pow, inputs: [x]}
`))
	require.NoError(t, err)
	_, err = noExp.Build(nil)
	assert.ErrorIs(t, err, ErrNoExponent)
}

func TestBuild_AllOperations(t *testing.T) {
	doc, err := Parse([]byte(`
nodes:
  - {name: a, value: 2}
  - {name: b, value: 0.5}
  - {name: s, op: sub, inputs: [a, b]}
  - {name: q, op: div, inputs: [s, b]}
  - {name: n, op: neg, inputs: [q]}
  - {name: r, op: relu, inputs: [n]}
  - {name: l, op: log, inputs: [a]}
  - {name: t, op: tanh, inputs: [l]}
  - {name: x, op: exp, inputs: [t]}
  - {name: out, op: ADD, inputs: [x, r]}
`))
	require.NoError(t, err)

	b, err := doc.Build(nil)
	require.NoError(t, err)

	q, _ := b.Node("q")
	assert.InDelta(t, 3.0, q.Data(), 1e-12)
	r, _ := b.Node("r")
	assert.Equal(t, 0.0, r.Data())
	assert.Equal(t, "out", doc.RootName())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", `nodes: []`, ErrNoNodes},
		{"no name", `nodes: [{value: 1}]`, ErrNoName},
		{"duplicate", `nodes: [{name: a, value: 1}, {name: a, value: 2}]`, ErrDuplicateNode},
		{"unknown op", `nodes: [{name: a, value: 1}, {name: b, op: sin, inputs: [a]}]`, ErrUnknownOp},
		{"arity", `nodes: [{name: a, value: 1}, {name: b, op: add, inputs: [a]}]`, ErrArity},
		{"const with inputs", `nodes: [{name: a, value: 1}, {name: b, value: 1, inputs: [a]}]`, ErrArity},
		{"missing value", `nodes: [{name: a}]`, ErrMissingValue},
		{"forward reference", `nodes: [{name: b, op: exp, inputs: [a]}, {name: a, value: 1}]`, ErrUnknownNode},
		{"self reference", `nodes: [{name: a, op: exp, inputs: [a]}]`, ErrUnknownNode},
		{"bad root", "root: z\nnodes: [{name: a, value: 1}]", ErrNoRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("nodes: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse graph document")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read graph file")
}

func TestDocument_MarshalRoundTrip(t *testing.T) {
	doc, err := Load("testdata/arith.yaml")
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doc.RootName(), again.RootName())
	assert.Equal(t, doc.Leaves(), again.Leaves())
}

func TestDocument_BuildFunc(t *testing.T) {
	doc, err := Load("testdata/arith.yaml")
	require.NoError(t, err)

	root, leaves, err := doc.BuildFunc()(map[string]float64{"f": 1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, root.Data())
	assert.Len(t, leaves, 4)
}
