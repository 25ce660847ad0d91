package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushInts(b *buffer[int], values ...int) {
	for _, v := range values {
		b.push(element[int]{item: v, future: newFuture()})
	}
}

func batchItems(batch []element[int]) []int {
	out := make([]int, len(batch))
	for i, e := range batch {
		out[i] = e.item
	}
	return out
}

func TestBuffer_PollTimeout(t *testing.T) {
	b := newBuffer[int]()

	start := time.Now()
	_, ok, err := b.poll(t.Context(), 30*time.Millisecond)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestBuffer_PollWakesOnPush(t *testing.T) {
	b := newBuffer[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		pushInts(b, 7)
	}()

	start := time.Now()
	e, ok, err := b.poll(t.Context(), time.Second)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, e.item)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestBuffer_PollCancelled(t *testing.T) {
	b := newBuffer[int]()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, ok, err := b.poll(ctx, time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuffer_DrainToKeepsOrderAndLimit(t *testing.T) {
	b := newBuffer[int]()
	pushInts(b, 1, 2, 3, 4, 5)

	batch := b.drainTo(nil, 3)
	assert.Equal(t, []int{1, 2, 3}, batchItems(batch))
	assert.Equal(t, 2, b.len())

	batch = b.drainTo(batch[:0], 10)
	assert.Equal(t, []int{4, 5}, batchItems(batch))
	assert.Equal(t, 0, b.len())
}

func TestBuffer_StaleNotifyDoesNotReturnEmpty(t *testing.T) {
	b := newBuffer[int]()
	pushInts(b, 1)

	// элемент забирается напрямую, сигнал в notify остается
	_ = b.drainTo(nil, 1)

	_, ok, err := b.poll(t.Context(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}
