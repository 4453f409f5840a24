package core

type Predicate func(*Node) bool

// FindFirst returns the first node under from, in pre-order, that matches.
func FindFirst(t *Tree, from NodeID, match Predicate) *Node {
	n := t.Node(from)
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := FindFirst(t, c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node under from that matches, in pre-order.
func FindAll(t *Tree, from NodeID, match Predicate) []*Node {
	var out []*Node
	walk(t, from, func(n *Node) {
		if match(n) {
			out = append(out, n)
		}
	})
	return out
}

func walk(t *Tree, id NodeID, visit func(*Node)) {
	n := t.Node(id)
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		walk(t, c, visit)
	}
}
