package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := newQueue[int](4)
	require.True(t, q.empty())

	for i := 0; i < 10; i++ {
		q.push(i)
	}
	require.Equal(t, 10, q.len())
	for i := 0; i < 10; i++ {
		require.Equal(t, i, q.pop())
	}
	require.True(t, q.empty())
}

func TestQueueGrowWrapped(t *testing.T) {
	q := newQueue[int](4)

	// Force the ring to wrap before growing.
	for i := 0; i < 3; i++ {
		q.push(i)
	}
	require.Equal(t, 0, q.pop())
	require.Equal(t, 1, q.pop())
	for i := 3; i < 12; i++ {
		q.push(i)
	}

	for want := 2; want < 12; want++ {
		require.Equal(t, want, q.pop())
	}
	require.True(t, q.empty())
}

func TestQueueClear(t *testing.T) {
	q := newQueue[int](2)
	q.push(1)
	q.push(2)
	q.clear()
	require.True(t, q.empty())

	q.push(7)
	require.Equal(t, 1, q.len())
	require.Equal(t, 7, q.pop())
}

func TestQueuePopEmptyPanics(t *testing.T) {
	q := newQueue[int](2)
	require.Panics(t, func() { q.pop() })
}
