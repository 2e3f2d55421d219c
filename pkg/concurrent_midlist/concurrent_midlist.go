package concurrent_midlist

import (
	"sync"

	"github.com/pmkol/midlist/pkg/midlist"
)

// ConcurrentList guards a midlist.List with a mutex.
type ConcurrentList[V any] struct {
	sync.Mutex
	l *midlist.List[V]
}

func NewConcurrentList[V any]() *ConcurrentList[V] {
	return &ConcurrentList[V]{
		l: midlist.New[V](),
	}
}

func (c *ConcurrentList[V]) Len() int {
	c.Lock()
	n := c.l.Len()
	c.Unlock()
	return n
}

func (c *ConcurrentList[V]) Get(index int) (v V, err error) {
	c.Lock()
	v, err = c.l.Get(index)
	c.Unlock()
	return
}

func (c *ConcurrentList[V]) Add(v V) error {
	c.Lock()
	err := c.l.Add(v)
	c.Unlock()
	return err
}

func (c *ConcurrentList[V]) Insert(index int, v V) error {
	c.Lock()
	err := c.l.Insert(index, v)
	c.Unlock()
	return err
}

func (c *ConcurrentList[V]) Remove(index int) (v V, err error) {
	c.Lock()
	v, err = c.l.Remove(index)
	c.Unlock()
	return
}

// PopMiddle removes the element the middle reference names.
func (c *ConcurrentList[V]) PopMiddle() (v V, ok bool) {
	c.Lock()
	defer c.Unlock()
	if c.l.Len() == 0 {
		return
	}
	v, err := c.l.Remove(midlist.MidIndex(c.l.Len()))
	return v, err == nil
}

func (c *ConcurrentList[V]) Clear() {
	c.Lock()
	c.l.Clear()
	c.Unlock()
}

func (c *ConcurrentList[V]) String() string {
	c.Lock()
	s := c.l.String()
	c.Unlock()
	return s
}

// Do runs f with the lock held. f must not call methods of c.
func (c *ConcurrentList[V]) Do(f func(l *midlist.List[V])) {
	c.Lock()
	f(c.l)
	c.Unlock()
}
