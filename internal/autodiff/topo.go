package autodiff

// TopoSort returns every node reachable from root in topological order:
// each node appears exactly once and after all of its inputs. root is last.
//
// The traversal is a post-order depth-first search driven by an explicit
// stack, so long chains do not grow the goroutine stack. Inputs are visited
// in operand order, which makes the result deterministic.
func TopoSort(root *Value) []*Value {
	if root == nil {
		return nil
	}

	type frame struct {
		node *Value
		next int // index of the next input to visit
	}

	var order []*Value
	visited := make(map[*Value]struct{})
	visited[root] = struct{}{}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.inputs) {
			child := top.node.inputs[top.next]
			top.next++
			if _, seen := visited[child]; !seen {
				visited[child] = struct{}{}
				stack = append(stack, frame{node: child})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order
}
