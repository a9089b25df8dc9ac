package autodiff_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/grad/internal/autodiff"
)

// assertTopological checks that every node appears once and after its inputs.
func assertTopological(t *testing.T, order []*autodiff.Value) {
	t.Helper()

	pos := make(map[*autodiff.Value]int, len(order))
	for i, n := range order {
		_, dup := pos[n]
		require.False(t, dup, "node %v appears twice", n)
		pos[n] = i
	}
	for i, n := range order {
		for _, in := range n.Inputs() {
			j, ok := pos[in]
			require.True(t, ok, "input %v of %v missing from order", in, n)
			assert.Less(t, j, i, "input %v must precede %v", in, n)
		}
	}
}

func TestTopoSort_Diamond(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	left := x.Exp()
	right := x.Tanh()
	top := left.Mul(right)

	order := autodiff.TopoSort(top)
	require.Len(t, order, 4)
	assert.Same(t, x, order[0])
	assert.Same(t, top, order[3])
	assertTopological(t, order)
}

func TestTopoSort_SingleNode(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	assert.Equal(t, []*autodiff.Value{x}, autodiff.TopoSort(x))
}

func TestTopoSort_Deterministic(t *testing.T) {
	a := autodiff.NewValue(1, "a")
	b := autodiff.NewValue(2, "b")
	out := a.Add(b)

	order := autodiff.TopoSort(out)
	assert.Equal(t, []*autodiff.Value{a, b, out}, order)
	assert.Equal(t, order, autodiff.TopoSort(out))
}

// TestTopoSort_RandomDAGs builds DAGs where each new node consumes earlier
// nodes chosen at random, so sharing is heavy.
func TestTopoSort_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		nodes := []*autodiff.Value{autodiff.Scalar(rng.Float64())}
		for i := 0; i < 40; i++ {
			a := nodes[rng.Intn(len(nodes))]
			b := nodes[rng.Intn(len(nodes))]
			var n *autodiff.Value
			switch rng.Intn(4) {
			case 0:
				n = a.Add(b)
			case 1:
				n = a.Mul(b)
			case 2:
				n = a.Tanh()
			default:
				n = autodiff.Scalar(rng.Float64())
			}
			nodes = append(nodes, n)
		}
		root := autodiff.Sum(nodes...)

		order := autodiff.TopoSort(root)
		assertTopological(t, order)
		assert.Same(t, root, order[len(order)-1])

		// Every node is reachable because root sums all of them.
		for _, n := range nodes {
			assert.True(t, autodiff.Trace(root).Contains(n))
		}
	}
}

func TestTopoSort_DeepChain(t *testing.T) {
	x := autodiff.NewValue(0.5, "x")
	out := x
	for i := 0; i < 100000; i++ {
		out = out.AddScalar(0)
	}

	order := autodiff.TopoSort(out)
	// x, then (constant, sum) per step.
	assert.Len(t, order, 1+2*100000)

	out.Backward()
	assert.Equal(t, 1.0, x.Grad())
}
