package core

import "encoding/json"

type NodeID int

const (
	NoNode NodeID = -1
	RootID NodeID = 0
)

// Node is one entry of a Tree. Parent and Children are indices into the same
// tree. Nodes returned by a Tree must not be modified.
type Node struct {
	ID        NodeID
	Type      string
	Props     map[string]any
	Component Component
	Parent    NodeID
	Children  []NodeID
}

// Tree stores every node of a screen in a single slice; the root is at index 0.
type Tree struct {
	nodes []Node
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

func (t *Tree) Root() *Node {
	return t.Node(RootID)
}

func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) Parent(id NodeID) *Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Node(n.Parent)
}

func (t *Tree) Children(id NodeID) []*Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, &t.nodes[c])
	}
	return children
}

type jsonNode struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props"`
	Children []jsonNode     `json:"children,omitempty"`
}

// MarshalJSON writes the tree in nested form, starting at the root.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t.Len() == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(t.nested(RootID))
}

func (t *Tree) nested(id NodeID) jsonNode {
	n := &t.nodes[id]
	out := jsonNode{Type: n.Type, Props: n.Props}
	for _, c := range n.Children {
		out.Children = append(out.Children, t.nested(c))
	}
	return out
}

func (t *Tree) add(n Node) NodeID {
	n.ID = NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	if n.Parent != NoNode {
		t.nodes[n.Parent].Children = append(t.nodes[n.Parent].Children, n.ID)
	}
	return n.ID
}
