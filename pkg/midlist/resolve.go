package midlist

// anchor is one of the four places a walk can start from.
type anchor uint8

const (
	fromHead anchor = iota
	fromMiddleBack
	fromMiddleNext
	fromTail
)

// route picks the cheapest anchor for index and the number of hops from it.
// index must be in [0, l.size).
func (l *List[V]) route(index int) (anchor, int) {
	mid := MidIndex(l.size)
	if index <= mid {
		if back := mid - index; back < index {
			return fromMiddleBack, back
		}
		return fromHead, index
	}
	fwd := index - (mid + 1)
	if back := l.size - 1 - index; back <= fwd {
		return fromTail, back
	}
	return fromMiddleNext, fwd
}

// locate returns the node at index and the hops it took to reach it.
// index must be in [0, l.size).
func (l *List[V]) locate(index int) (*node[V], int) {
	a, hops := l.route(index)
	var n *node[V]
	switch a {
	case fromHead:
		n = l.head
		for i := 0; i < hops; i++ {
			n = n.next
		}
	case fromMiddleBack:
		n = l.middle
		for i := 0; i < hops; i++ {
			n = n.prev
		}
	case fromMiddleNext:
		n = l.middle.next
		for i := 0; i < hops; i++ {
			n = n.next
		}
	default:
		n = l.tail
		for i := 0; i < hops; i++ {
			n = n.prev
		}
	}
	return n, hops
}

// Cost returns the number of link hops Get(index) walks. It does not touch
// the chain. ok is false if index is out of range.
func (l *List[V]) Cost(index int) (hops int, ok bool) {
	if index < 0 || index >= l.size {
		return 0, false
	}
	_, hops = l.route(index)
	return hops, true
}
