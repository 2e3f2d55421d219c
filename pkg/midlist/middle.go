package midlist

// MidIndex returns the index the middle reference names in a list of the
// given size: the exact centre for odd sizes, the lower centre for even ones.
// It is 0 for an empty list, which has no middle.
func MidIndex(size int) int {
	if size <= 0 {
		return 0
	}
	return (size - 1) / 2
}

// afterInsert moves l.middle at most one hop after a node was placed at
// index. l.size must already count the new node.
func (l *List[V]) afterInsert(index int) {
	oldMid := MidIndex(l.size - 1)
	rem := l.size % 2

	switch {
	case index > oldMid && rem == 1:
		l.middle = l.middle.next
	case index <= oldMid && rem == 0:
		l.middle = l.middle.prev
	}
}

// beforeRemove moves l.middle at most one hop ahead of removing the node
// at index. It must run while that node is still linked and l.size still
// counts it.
func (l *List[V]) beforeRemove(index int) {
	rem := l.size % 2
	mid := MidIndex(l.size)

	switch {
	case index > mid && rem == 1:
		l.middle = l.middle.prev
	case index < mid && rem == 0:
		l.middle = l.middle.next
	case index == mid:
		if rem == 0 {
			l.middle = l.middle.next
		} else {
			l.middle = l.middle.prev
		}
	}
}
