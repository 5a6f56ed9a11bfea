package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingQueueFIFOOrder(t *testing.T) {
	rq := NewRingQueue[int](4)

	for i := 1; i <= 4; i++ {
		assert.NoError(t, rq.Enqueue(i))
	}
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(5), ErrQueueFull)

	for i := 1; i <= 4; i++ {
		v, err := rq.Dequeue()
		assert.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[string](2)

	assert.NoError(t, rq.Enqueue("a"))
	assert.NoError(t, rq.Enqueue("b"))

	v, err := rq.Dequeue()
	assert.NoError(t, err)
	assert.Equal(t, "a", v)

	// The freed slot must be reusable.
	assert.NoError(t, rq.Enqueue("c"))

	v, _ = rq.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = rq.Dequeue()
	assert.Equal(t, "c", v)
}

func TestRingQueuePeekDoesNotConsume(t *testing.T) {
	rq := NewRingQueue[int](2)
	assert.NoError(t, rq.Enqueue(7))

	v, err := rq.Peek()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.False(t, rq.IsEmpty())
}
