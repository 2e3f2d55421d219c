package midlist

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkChain verifies every structural invariant of l against want.
func checkChain[V comparable](t *testing.T, l *List[V], want []V) {
	t.Helper()
	require.Equal(t, len(want), l.Len())

	if len(want) == 0 {
		require.Nil(t, l.head)
		require.Nil(t, l.tail)
		require.Nil(t, l.middle)
		return
	}

	require.Nil(t, l.head.prev)
	require.Nil(t, l.tail.next)

	i := 0
	var last *node[V]
	for n := l.head; n != nil; n = n.next {
		require.Less(t, i, len(want), "forward chain longer than size")
		require.Equal(t, want[i], n.v, "forward index %d", i)
		if i == MidIndex(len(want)) {
			require.Same(t, n, l.middle, "middle is not at index %d", i)
		}
		last = n
		i++
	}
	require.Equal(t, len(want), i)
	require.Same(t, l.tail, last)

	i = len(want) - 1
	var first *node[V]
	for n := l.tail; n != nil; n = n.prev {
		require.GreaterOrEqual(t, i, 0, "backward chain longer than size")
		require.Equal(t, want[i], n.v, "backward index %d", i)
		first = n
		i--
	}
	require.Equal(t, -1, i)
	require.Same(t, l.head, first)
}

func fill(n int) (*List[int], []int) {
	l := New[int]()
	ref := make([]int, 0, n)
	for i := 0; i < n; i++ {
		_ = l.Add(i)
		ref = append(ref, i)
	}
	return l, ref
}

func insertRef(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeRef(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}

func TestList_scenarios(t *testing.T) {
	l := New[string]()

	// A
	require.NoError(t, l.Add("a"))
	require.NoError(t, l.Add("b"))
	require.NoError(t, l.Add("c"))
	assert.Equal(t, "[a, b, c]", l.String())
	v, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	m, ok := l.Middle()
	require.True(t, ok)
	assert.Equal(t, "b", m)

	// B
	v, err = l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	checkChain(t, l, []string{"a", "c"})
	m, _ = l.Middle()
	assert.Equal(t, "a", m)

	// C
	require.NoError(t, l.Insert(1, "x"))
	checkChain(t, l, []string{"a", "x", "c"})

	// D
	l.Clear()
	assert.Equal(t, "[]", l.String())
	assert.Equal(t, 0, l.Len())
	_, ok = l.Middle()
	assert.False(t, ok)
}

func TestList_rejectAbsent(t *testing.T) {
	l := New[*int]()
	one := 1
	require.NoError(t, l.Add(&one))

	err := l.Add(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = l.Insert(0, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// The element check comes before the index check.
	err = l.Insert(10, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, 1, l.Len())
	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Same(t, &one, v)

	var anyList List[any]
	assert.ErrorIs(t, anyList.Add(nil), ErrInvalidArgument)
	assert.NoError(t, anyList.Add(0))
}

func TestIsAbsent(t *testing.T) {
	var (
		p  *int
		mp map[string]int
		s  []int
		ch chan int
		f  func()
		e  error
	)
	assert.True(t, IsAbsent(p))
	assert.True(t, IsAbsent(mp))
	assert.True(t, IsAbsent(s))
	assert.True(t, IsAbsent(ch))
	assert.True(t, IsAbsent(f))
	assert.True(t, IsAbsent(e))
	assert.True(t, IsAbsent[any](nil))

	assert.False(t, IsAbsent(0))
	assert.False(t, IsAbsent(""))
	assert.False(t, IsAbsent(struct{}{}))
	assert.False(t, IsAbsent([]int{}))
	assert.False(t, IsAbsent(errors.New("x")))
}

func TestList_indexOutOfRange(t *testing.T) {
	for size := 0; size < 6; size++ {
		l, ref := fill(size)
		before := l.String()

		_, err := l.Get(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Get(size)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Remove(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Remove(size)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.ErrorIs(t, l.Insert(-1, 7), ErrIndexOutOfRange)
		assert.ErrorIs(t, l.Insert(size+1, 7), ErrIndexOutOfRange)

		_, ok := l.Cost(size)
		assert.False(t, ok)

		assert.Equal(t, before, l.String())
		checkChain(t, l, ref)
	}

	_, err := New[int]().Get(3)
	assert.EqualError(t, err, "index out of range: index 3, size 0")
}

func TestList_insertEveryIndex(t *testing.T) {
	for size := 0; size <= 40; size++ {
		for i := 0; i <= size; i++ {
			l, ref := fill(size)
			require.NoError(t, l.Insert(i, -1))
			checkChain(t, l, insertRef(ref, i, -1))
		}
	}
}

func TestList_removeEveryIndex(t *testing.T) {
	for size := 1; size <= 40; size++ {
		for i := 0; i < size; i++ {
			l, ref := fill(size)
			v, err := l.Remove(i)
			require.NoError(t, err)
			require.Equal(t, i, v)
			checkChain(t, l, removeRef(ref, i))
		}
	}
}

func TestList_removeThenInsertRestores(t *testing.T) {
	for size := 1; size <= 30; size++ {
		for i := 0; i < size; i++ {
			l, ref := fill(size)
			v, err := l.Remove(i)
			require.NoError(t, err)
			require.NoError(t, l.Insert(i, v))
			checkChain(t, l, ref)
		}
	}
}

func TestList_boundaryInserts(t *testing.T) {
	for size := 0; size <= 20; size++ {
		a, ref := fill(size)
		b, _ := fill(size)
		require.NoError(t, a.Insert(size, 99))
		require.NoError(t, b.Add(99))
		checkChain(t, a, append(append([]int{}, ref...), 99))
		checkChain(t, b, append(append([]int{}, ref...), 99))

		c, _ := fill(size)
		d, _ := fill(size)
		require.NoError(t, c.Insert(0, 99))
		d.pushFront(99)
		checkChain(t, c, insertRef(append([]int{}, ref...), 0, 99))
		checkChain(t, d, insertRef(append([]int{}, ref...), 0, 99))
	}
}

func TestList_locateCost(t *testing.T) {
	for size := 1; size <= 64; size++ {
		l, _ := fill(size)
		bound := (size+3)/4 + 1
		for i := 0; i < size; i++ {
			n, hops := l.locate(i)
			require.Equal(t, i, n.v)
			require.LessOrEqual(t, hops, bound, "size %d index %d", size, i)

			c, ok := l.Cost(i)
			require.True(t, ok)
			require.Equal(t, hops, c)
		}
	}
}

func TestList_randomOps(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	l := New[int]()
	var ref []int

	for step := 0; step < 20000; step++ {
		switch op := r.Intn(10); {
		case op < 3:
			i := r.Intn(len(ref) + 1)
			require.NoError(t, l.Insert(i, step))
			ref = insertRef(ref, i, step)
		case op < 4:
			require.NoError(t, l.Add(step))
			ref = append(ref, step)
		case op < 8:
			if len(ref) == 0 {
				continue
			}
			i := r.Intn(len(ref))
			v, err := l.Remove(i)
			require.NoError(t, err)
			require.Equal(t, ref[i], v)
			ref = removeRef(ref, i)
		default:
			if r.Intn(50) == 0 {
				l.Clear()
				ref = ref[:0]
			} else if len(ref) > 0 {
				i := r.Intn(len(ref))
				v, err := l.Get(i)
				require.NoError(t, err)
				require.Equal(t, ref[i], v)
			}
		}
		checkChain(t, l, ref)
	}
}

func TestList_zeroValue(t *testing.T) {
	var l List[string]
	assert.Equal(t, "[]", l.String())
	require.NoError(t, l.Insert(0, "x"))
	require.NoError(t, l.Insert(0, "w"))
	checkChain(t, &l, []string{"w", "x"})
}

func TestList_removedNodeReleased(t *testing.T) {
	l := New[*string]()
	for i := 0; i < 5; i++ {
		s := strconv.Itoa(i)
		require.NoError(t, l.Add(&s))
	}
	n, _ := l.locate(2)
	_, err := l.Remove(2)
	require.NoError(t, err)
	assert.Nil(t, n.v)
	assert.Nil(t, n.next)
	assert.Nil(t, n.prev)
}

func TestMidIndex(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{0, 0}, {1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {10, 4}, {11, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MidIndex(tt.size), "size %d", tt.size)
	}
}

func BenchmarkList_Get(b *testing.B) {
	l, _ := fill(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.Get(i % 4096)
	}
}
