// Package sequence exposes a midlist.List through the broad Sequence
// contract. Only the positional core is implemented; every other member
// fails with midlist.ErrUnsupportedOperation without doing any work.
package sequence

import (
	"fmt"

	"github.com/pmkol/midlist/pkg/midlist"
)

// Iterator walks a Sequence.
type Iterator[V any] interface {
	HasNext() bool
	Next() (V, error)
}

// ListIterator walks a Sequence in both directions.
type ListIterator[V any] interface {
	Iterator[V]
	HasPrevious() bool
	Previous() (V, error)
	NextIndex() int
	PreviousIndex() int
}

// Sequence is the full ordered-collection contract.
type Sequence[V any] interface {
	fmt.Stringer

	Len() int
	IsEmpty() (bool, error)
	Get(index int) (V, error)
	Set(index int, v V) (V, error)
	Add(v V) (bool, error)
	Insert(index int, v V) error
	Remove(index int) (V, error)
	RemoveValue(v V) (bool, error)
	Clear()

	Contains(v V) (bool, error)
	IndexOf(v V) (int, error)
	LastIndexOf(v V) (int, error)
	ContainsAll(vs []V) (bool, error)
	AddAll(vs []V) (bool, error)
	AddAllAt(index int, vs []V) (bool, error)
	RemoveAll(vs []V) (bool, error)
	RetainAll(vs []V) (bool, error)

	ToArray() ([]V, error)
	ToArrayInto(dst []V) ([]V, error)
	Iterator() (Iterator[V], error)
	ListIterator() (ListIterator[V], error)
	ListIteratorAt(index int) (ListIterator[V], error)
	SubList(from, to int) (Sequence[V], error)
}

var _ Sequence[int] = (*Adapter[int])(nil)

// Adapter implements Sequence on top of a midlist.List.
type Adapter[V any] struct {
	l *midlist.List[V]
}

// NewAdapter wraps l. A nil l gets a fresh empty list.
func NewAdapter[V any](l *midlist.List[V]) *Adapter[V] {
	if l == nil {
		l = midlist.New[V]()
	}
	return &Adapter[V]{l: l}
}

// List returns the underlying list.
func (a *Adapter[V]) List() *midlist.List[V] {
	return a.l
}

func (a *Adapter[V]) Len() int {
	return a.l.Len()
}

func (a *Adapter[V]) Get(index int) (V, error) {
	return a.l.Get(index)
}

// Add appends v and always reports true on success.
func (a *Adapter[V]) Add(v V) (bool, error) {
	if err := a.l.Add(v); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Adapter[V]) Insert(index int, v V) error {
	return a.l.Insert(index, v)
}

func (a *Adapter[V]) Remove(index int) (V, error) {
	return a.l.Remove(index)
}

func (a *Adapter[V]) Clear() {
	a.l.Clear()
}

func (a *Adapter[V]) String() string {
	return a.l.String()
}

func unsupported(member string) error {
	return fmt.Errorf("%s: %w", member, midlist.ErrUnsupportedOperation)
}

func (a *Adapter[V]) IsEmpty() (bool, error) {
	return false, unsupported("IsEmpty")
}

func (a *Adapter[V]) Set(int, V) (v V, err error) {
	return v, unsupported("Set")
}

func (a *Adapter[V]) RemoveValue(V) (bool, error) {
	return false, unsupported("RemoveValue")
}

func (a *Adapter[V]) Contains(V) (bool, error) {
	return false, unsupported("Contains")
}

func (a *Adapter[V]) IndexOf(V) (int, error) {
	return -1, unsupported("IndexOf")
}

func (a *Adapter[V]) LastIndexOf(V) (int, error) {
	return -1, unsupported("LastIndexOf")
}

func (a *Adapter[V]) ContainsAll([]V) (bool, error) {
	return false, unsupported("ContainsAll")
}

func (a *Adapter[V]) AddAll([]V) (bool, error) {
	return false, unsupported("AddAll")
}

func (a *Adapter[V]) AddAllAt(int, []V) (bool, error) {
	return false, unsupported("AddAllAt")
}

func (a *Adapter[V]) RemoveAll([]V) (bool, error) {
	return false, unsupported("RemoveAll")
}

func (a *Adapter[V]) RetainAll([]V) (bool, error) {
	return false, unsupported("RetainAll")
}

func (a *Adapter[V]) ToArray() ([]V, error) {
	return nil, unsupported("ToArray")
}

func (a *Adapter[V]) ToArrayInto([]V) ([]V, error) {
	return nil, unsupported("ToArrayInto")
}

func (a *Adapter[V]) Iterator() (Iterator[V], error) {
	return nil, unsupported("Iterator")
}

func (a *Adapter[V]) ListIterator() (ListIterator[V], error) {
	return nil, unsupported("ListIterator")
}

func (a *Adapter[V]) ListIteratorAt(int) (ListIterator[V], error) {
	return nil, unsupported("ListIteratorAt")
}

func (a *Adapter[V]) SubList(int, int) (Sequence[V], error) {
	return nil, unsupported("SubList")
}
