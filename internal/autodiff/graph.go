package autodiff

// Edge connects an input node to the node that consumes it.
type Edge struct {
	From *Value // input
	To   *Value // consumer
}

// Graph is a read-only view of the nodes and edges reachable from a root,
// meant for renderers and debugging tools.
type Graph struct {
	Root  *Value
	Nodes []*Value // topological order, root last
	Edges []Edge   // unique input -> consumer pairs
}

// Trace enumerates the graph reachable from root without modifying any node.
// An operand used twice by the same consumer (a*a) produces a single edge.
func Trace(root *Value) Graph {
	g := Graph{Root: root, Nodes: TopoSort(root)}

	seen := make(map[Edge]struct{})
	for _, node := range g.Nodes {
		for _, input := range node.inputs {
			e := Edge{From: input, To: node}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			g.Edges = append(g.Edges, e)
		}
	}
	return g
}

// Contains reports whether v is reachable from the root.
func (g Graph) Contains(v *Value) bool {
	for _, n := range g.Nodes {
		if n == v {
			return true
		}
	}
	return false
}

// Leaves returns the nodes without inputs, in topological order.
func (g Graph) Leaves() []*Value {
	var leaves []*Value
	for _, n := range g.Nodes {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
