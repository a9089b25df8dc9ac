// Package graphfile builds expression graphs from YAML documents.
//
// A document lists named nodes in dependency order. Leaves carry a value,
// every other node names an operation and the earlier nodes it consumes:
//
//	name: neuron
//	root: o
//	nodes:
//	  - {name: x1, value: 2.0}
//	  - {name: w1, value: -3.0}
//	  - {name: b, value: 6.8813735870195432}
//	  - {name: x1w1, op: mul, inputs: [x1, w1]}
//	  - {name: n, op: add, inputs: [x1w1, b]}
//	  - {name: o, op: tanh, inputs: [n]}
//
// Inputs may only reference nodes declared earlier, so every document
// describes a DAG. The root defaults to the last node.
package graphfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors.
var (
	ErrNoNodes       = errors.New("document has no nodes")
	ErrNoName        = errors.New("node has no name")
	ErrDuplicateNode = errors.New("duplicate node name")
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownOp     = errors.New("unknown operation")
	ErrArity         = errors.New("wrong number of inputs")
	ErrMissingValue  = errors.New("constant has no value")
	ErrNoExponent    = errors.New("pow has no exponent")
	ErrNoRoot        = errors.New("root node not found")
)

// NodeError attaches the offending node name to an error.
type NodeError struct {
	Node string
	Err  error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// Document is a YAML expression graph.
type Document struct {
	Name  string    `yaml:"name,omitempty"`
	Root  string    `yaml:"root,omitempty"`
	Nodes []NodeDef `yaml:"nodes"`
}

// NodeDef declares one node.
//
// Exponent is only read by pow. It is decoded loosely so that a node name
// given as exponent reaches the engine and is rejected there.
type NodeDef struct {
	Name     string   `yaml:"name"`
	Op       string   `yaml:"op,omitempty"`
	Value    *float64 `yaml:"value,omitempty"`
	Inputs   []string `yaml:"inputs,omitempty"`
	Exponent any      `yaml:"exponent,omitempty"`
	Label    string   `yaml:"label,omitempty"`
}

// Load reads and validates a document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// op returns the normalized operation name; nodes without op are constants.
func (n NodeDef) op() string {
	op := strings.ToLower(strings.TrimSpace(n.Op))
	if op == "" {
		return opConst
	}
	return op
}

// Validate checks names, references and arities.
// It does not evaluate anything, so exponent types are checked by Build.
func (d *Document) Validate() error {
	if len(d.Nodes) == 0 {
		return ErrNoNodes
	}

	seen := make(map[string]struct{}, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Name == "" {
			return &NodeError{Node: fmt.Sprintf("#%d", i), Err: ErrNoName}
		}
		if _, dup := seen[n.Name]; dup {
			return &NodeError{Node: n.Name, Err: ErrDuplicateNode}
		}

		entry, ok := builders[n.op()]
		if !ok {
			return &NodeError{Node: n.Name, Err: fmt.Errorf("%w %q", ErrUnknownOp, n.Op)}
		}
		if len(n.Inputs) != entry.arity {
			return &NodeError{
				Node: n.Name,
				Err:  fmt.Errorf("%w: %s takes %d, got %d", ErrArity, n.op(), entry.arity, len(n.Inputs)),
			}
		}
		if n.op() == opConst && n.Value == nil {
			return &NodeError{Node: n.Name, Err: ErrMissingValue}
		}
		for _, in := range n.Inputs {
			if _, ok := seen[in]; !ok {
				return &NodeError{Node: n.Name, Err: fmt.Errorf("%w %q (inputs must be declared earlier)", ErrUnknownNode, in)}
			}
		}

		seen[n.Name] = struct{}{}
	}

	if d.Root != "" {
		if _, ok := seen[d.Root]; !ok {
			return fmt.Errorf("%w: %q", ErrNoRoot, d.Root)
		}
	}
	return nil
}

// RootName returns the declared root or the last node.
func (d *Document) RootName() string {
	if d.Root != "" {
		return d.Root
	}
	if len(d.Nodes) == 0 {
		return ""
	}
	return d.Nodes[len(d.Nodes)-1].Name
}

// Leaves returns the constant node values keyed by name.
func (d *Document) Leaves() map[string]float64 {
	leaves := make(map[string]float64)
	for _, n := range d.Nodes {
		if n.op() == opConst && n.Value != nil {
			leaves[n.Name] = *n.Value
		}
	}
	return leaves
}
