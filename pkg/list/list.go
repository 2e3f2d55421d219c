// Package list is a plain two-anchor doubly linked list. Indexed access walks
// from whichever of front or back is nearer, which makes it the baseline the
// midlist traversal cost is measured against.
package list

type List[V any] struct {
	front, back *Elem[V]
	length      int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func mustBeFreeElem[V any](e *Elem[V]) {
	if e.prev != nil || e.next != nil || e.list != nil {
		panic("element is in use")
	}
}

func (l *List[V]) Front() *Elem[V] {
	return l.front
}

func (l *List[V]) Back() *Elem[V] {
	return l.back
}

func (l *List[V]) Len() int {
	return l.length
}

func (l *List[V]) PushFront(e *Elem[V]) *Elem[V] {
	mustBeFreeElem(e)
	l.length++
	e.list = l

	if l.front == nil {
		l.front = e
		l.back = e
		return e
	}

	e.next = l.front
	l.front.prev = e
	l.front = e
	return e
}

func (l *List[V]) PushBack(e *Elem[V]) *Elem[V] {
	mustBeFreeElem(e)
	l.length++
	e.list = l

	if l.back == nil {
		l.front = e
		l.back = e
		return e
	}

	e.prev = l.back
	l.back.next = e
	l.back = e
	return e
}

// InsertBefore links e in front of mark. mark must belong to l.
func (l *List[V]) InsertBefore(e, mark *Elem[V]) *Elem[V] {
	if mark.list != l {
		panic("mark does not belong to this list")
	}
	if mark == l.front {
		return l.PushFront(e)
	}
	mustBeFreeElem(e)
	l.length++
	e.list = l

	p := mark.prev
	e.prev, e.next = p, mark
	p.next = e
	mark.prev = e
	return e
}

// At returns the element at index and the number of hops taken from the
// nearer end. It returns nil if index is out of range.
func (l *List[V]) At(index int) (*Elem[V], int) {
	if index < 0 || index >= l.length {
		return nil, 0
	}
	if back := l.length - 1 - index; back < index {
		e := l.back
		for i := 0; i < back; i++ {
			e = e.prev
		}
		return e, back
	}
	e := l.front
	for i := 0; i < index; i++ {
		e = e.next
	}
	return e, index
}

func (l *List[V]) PopElem(e *Elem[V]) *Elem[V] {
	if e.list != l {
		panic("elem does not belong to this list")
	}

	l.length--

	p, n := e.prev, e.next

	if p != nil {
		p.next = n
	} else {
		l.front = n
	}

	if n != nil {
		n.prev = p
	} else {
		l.back = p
	}

	e.prev = nil
	e.next = nil
	e.list = nil

	return e
}
