package autodiff

// gradientTape replays a topologically ordered graph in reverse to compute
// the gradients of a single backward pass.
//
// Gradients for the pass are kept in the tape, not in the nodes, so a pass
// always computes d(root)/d(node) regardless of what earlier passes left in
// Value.grad. commit then adds the pass result into the nodes.
type gradientTape struct {
	order []*Value           // Reachable nodes, inputs before consumers
	grads map[*Value]float64 // Gradients of the current pass
}

// newGradientTape records the graph reachable from root.
func newGradientTape(root *Value) *gradientTape {
	order := TopoSort(root)
	return &gradientTape{
		order: order,
		grads: make(map[*Value]float64, len(order)),
	}
}

// backward seeds the root with outputGrad and walks the tape backwards.
//
// Algorithm:
//  1. Start with the output gradient (1 for d(root)/d(root))
//  2. Walk nodes in reverse topological order
//  3. For each node, compute input gradient contributions via its operation
//  4. Accumulate contributions when the same node is used multiple times
func (t *gradientTape) backward(outputGrad float64) {
	if len(t.order) == 0 {
		return
	}
	t.grads[t.order[len(t.order)-1]] = outputGrad

	in := make([]float64, 0, 2)
	for i := len(t.order) - 1; i >= 0; i-- {
		node := t.order[i]
		if node.op == nil {
			continue
		}
		in = in[:0]
		for _, x := range node.inputs {
			in = append(in, x.data)
		}
		inputGrads := node.op.Backward(in, node.data, t.grads[node])
		t.accumulateGrads(node, inputGrads)
	}
}

// accumulateGrads adds each input gradient contribution to the pass total.
func (t *gradientTape) accumulateGrads(node *Value, inputGrads []float64) {
	for j, input := range node.inputs {
		if j >= len(inputGrads) {
			break
		}
		t.grads[input] += inputGrads[j]
	}
}

// commit adds the pass gradients into the nodes.
func (t *gradientTape) commit() {
	for _, node := range t.order {
		node.grad += t.grads[node]
	}
}
