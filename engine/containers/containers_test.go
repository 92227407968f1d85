package containers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxEmpty(t *testing.T) {
	m := NewMailbox[int]()
	assert.False(t, m.Pending())
	v, ok := m.Take()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestMailboxLatestWins(t *testing.T) {
	m := NewMailbox[string]()
	m.Post("first")
	m.Post("second")
	assert.True(t, m.Pending())

	v, ok := m.Take()
	require.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = m.Take()
	assert.False(t, ok)
}

func TestMailboxConcurrentPost(t *testing.T) {
	m := NewMailbox[int]()
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Post(n)
			}
		}(i)
	}

	taken := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		if v, ok := m.Take(); ok {
			assert.True(t, v >= 1 && v <= 8)
			taken++
		}
	}
	if v, ok := m.Take(); ok {
		assert.True(t, v >= 1 && v <= 8)
		taken++
	}
	assert.Greater(t, taken, 0)
	assert.False(t, m.Pending())
}

func TestRingQueue(t *testing.T) {
	q := NewRingQueue[int](3)
	assert.True(t, q.IsEmpty())

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, q.Enqueue(3))
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue(4), ErrQueueFull)

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, q.Len())
}

func TestRingQueuePushAndAverage(t *testing.T) {
	q := NewRingQueue[float64](2)
	assert.Equal(t, 0.0, Average(q))

	q.Push(10)
	q.Push(20)
	q.Push(40)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 30.0, Average(q))

	var seen []float64
	q.Each(func(v float64) { seen = append(seen, v) })
	assert.Equal(t, []float64{20, 40}, seen)
}
