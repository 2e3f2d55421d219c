// Package midlist implements an index-addressable doubly linked list that
// also tracks its middle node. Positional access walks from the nearest of
// four anchors (head, middle, middle's successor, tail), so reaching any
// index costs at most about a quarter of the length.
//
// A List is not safe for concurrent use. See package concurrent_midlist for
// a locked wrapper.
package midlist

import (
	"fmt"
	"strings"
)

// List is a doubly linked list with a tracked middle node.
// The zero value is an empty list ready to use.
type List[V any] struct {
	head, tail *node[V]
	middle     *node[V] // node at MidIndex(size)
	size       int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Len() int {
	return l.size
}

// Get returns the element at index.
func (l *List[V]) Get(index int) (v V, err error) {
	if index < 0 || index >= l.size {
		return v, indexErr(index, l.size)
	}
	n, _ := l.locate(index)
	return n.v, nil
}

// Middle returns the element the middle reference currently names.
func (l *List[V]) Middle() (v V, ok bool) {
	if l.middle == nil {
		return v, false
	}
	return l.middle.v, true
}

// Add appends v to the back of the list.
func (l *List[V]) Add(v V) error {
	if IsAbsent(v) {
		return ErrInvalidArgument
	}
	l.pushBack(v)
	return nil
}

func (l *List[V]) pushBack(v V) {
	if l.size == 0 {
		l.init(v)
		return
	}
	n := newNode(v, nil, l.tail)
	l.tail.next = n
	l.tail = n
	l.size++
	l.afterInsert(l.size - 1)
}

// pushFront prepends v. Callers validate v.
func (l *List[V]) pushFront(v V) {
	if l.size == 0 {
		l.init(v)
		return
	}
	n := newNode(v, l.head, nil)
	l.head.prev = n
	l.head = n
	l.size++
	l.afterInsert(0)
}

func (l *List[V]) init(v V) {
	n := newNode[V](v, nil, nil)
	l.head, l.tail, l.middle = n, n, n
	l.size = 1
}

// Insert places v at index, shifting the element at index and everything
// after it one position back. index may equal Len().
func (l *List[V]) Insert(index int, v V) error {
	if IsAbsent(v) {
		return ErrInvalidArgument
	}
	if index < 0 || index > l.size {
		return indexErr(index, l.size)
	}

	switch {
	case index == l.size:
		l.pushBack(v)
	case index == 0:
		l.pushFront(v)
	default:
		next, _ := l.locate(index)
		prev := next.prev
		n := newNode(v, next, prev)
		prev.next = n
		next.prev = n
		l.size++
		l.afterInsert(index)
	}
	return nil
}

// Remove unlinks the element at index and returns it.
func (l *List[V]) Remove(index int) (v V, err error) {
	if index < 0 || index >= l.size {
		return v, indexErr(index, l.size)
	}

	if l.size == 1 {
		n := l.head
		l.Clear()
		return n.release(), nil
	}

	var n *node[V]
	switch {
	case index == 0:
		n = l.head
	case index == l.size-1:
		n = l.tail
	default:
		n, _ = l.locate(index)
	}

	l.beforeRemove(index)
	switch n {
	case l.head:
		l.head = n.next
		l.head.prev = nil
	case l.tail:
		l.tail = n.prev
		l.tail.next = nil
	default:
		n.prev.next = n.next
		n.next.prev = n.prev
	}
	l.size--
	return n.release(), nil
}

// Clear drops every element.
func (l *List[V]) Clear() {
	l.head, l.tail, l.middle = nil, nil, nil
	l.size = 0
}

// Values returns a copy of the elements from head to tail.
func (l *List[V]) Values() []V {
	s := make([]V, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		s = append(s, n.v)
	}
	return s
}

// String renders the list as "[e0, e1, ..., en]".
func (l *List[V]) String() string {
	if l.size == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, n.v)
	}
	b.WriteByte(']')
	return b.String()
}
