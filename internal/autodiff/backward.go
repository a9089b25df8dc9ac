package autodiff

// Backward computes d(root)/d(node) for every node reachable from root and
// adds it to the node's gradient.
//
// On a freshly built graph this leaves root.Grad() == 1 and every other
// reachable node holding its partial derivative. Calling Backward again
// without ZeroGrad adds a second copy of every gradient: k passes leave k
// times the single-pass values. Values and inputs are never modified.
//
// A root without inputs only receives its own gradient of 1.
func Backward(root *Value) {
	if root == nil {
		return
	}
	tape := newGradientTape(root)
	tape.backward(1.0)
	tape.commit()
}

// Backward runs a backward pass rooted at v. See the package function Backward.
func (v *Value) Backward() {
	Backward(v)
}

// ZeroGrad resets the gradient of every node reachable from root to zero.
func ZeroGrad(root *Value) {
	for _, node := range TopoSort(root) {
		node.grad = 0
	}
}

// ZeroGrad resets the gradients of v and everything it depends on.
func (v *Value) ZeroGrad() {
	ZeroGrad(v)
}

// Gradients returns a snapshot of the gradient of every node reachable from root.
func Gradients(root *Value) map[*Value]float64 {
	order := TopoSort(root)
	grads := make(map[*Value]float64, len(order))
	for _, node := range order {
		grads[node] = node.grad
	}
	return grads
}
