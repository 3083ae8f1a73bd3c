package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[string](2)
	assert.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue("c"), ErrQueueFull)

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// the write index wraps to the freed slot
	require.NoError(t, rq.Enqueue("c"))
	head, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", head)
	assert.Equal(t, 2, rq.Len())

	eq := func(a, b string) bool { return a == b }
	assert.True(t, rq.Contains("c", eq))
	assert.False(t, rq.Contains("a", eq))

	for _, want := range []string{"b", "c"} {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = rq.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}
