package midlist

type node[V any] struct {
	v          V
	next, prev *node[V]
}

func newNode[V any](v V, next, prev *node[V]) *node[V] {
	return &node[V]{v: v, next: next, prev: prev}
}

// release drops the links and the value of an unlinked node, so a stale
// reference to it pins neither its old neighbours nor the element.
func (n *node[V]) release() V {
	v := n.v
	var zero V
	n.v = zero
	n.next, n.prev = nil, nil
	return v
}
