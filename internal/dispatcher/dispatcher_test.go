package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_Success(t *testing.T) {
	var called int32
	saveFn := func(ctx context.Context, items []int) error {
		atomic.AddInt32(&called, 1)
		assert.Equal(t, []int{1, 2, 3}, items)
		return nil
	}

	d := NewDispatcher(saveFn)
	err := d.Save(context.Background(), []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("expected save to be called once, got %d", called)
	}
}

func TestDispatcher_BackoffRetry(t *testing.T) {
	var called int32
	failures := 2
	saveFn := func(ctx context.Context, items []int) error {
		c := atomic.AddInt32(&called, 1)
		if c <= int32(failures) {
			return errors.New("fail")
		}
		return nil
	}

	d := NewDispatcher(saveFn)
	err := d.Save(context.Background(), []int{100})
	if err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(&called) != int32(failures+1) {
		t.Errorf("expected save to be called %d times, got %d", failures+1, called)
	}
}

func TestDispatcher_AttemptsExhausted(t *testing.T) {
	var called int32
	expectedErr := errors.New("storage unavailable")
	saveFn := func(ctx context.Context, items []int) error {
		atomic.AddInt32(&called, 1)
		return expectedErr
	}

	d := NewDispatcherWithConfig(saveFn, Config{AttemptCount: 3, StartTimeout: 10 * time.Millisecond})
	err := d.Save(context.Background(), []int{1})

	assert.ErrorIs(t, err, ErrBackoffTimeout)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, int32(3), atomic.LoadInt32(&called))
}

func TestDispatcher_AttemptTimeoutGrows(t *testing.T) {
	var deadlines []time.Duration
	saveFn := func(ctx context.Context, items []int) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		deadlines = append(deadlines, time.Until(deadline))
		return errors.New("fail")
	}

	d := NewDispatcherWithConfig(saveFn, Config{AttemptCount: 3, StartTimeout: 100 * time.Millisecond, Multiply: 2})
	_ = d.Save(context.Background(), []int{1})

	assert.Len(t, deadlines, 3)
	assert.Greater(t, deadlines[1], deadlines[0])
	assert.Greater(t, deadlines[2], deadlines[1])
}

func TestDispatcher_ContextCancel(t *testing.T) {
	var called int32
	saveFn := func(ctx context.Context, items []int) error {
		atomic.AddInt32(&called, 1)
		// имитируем долгую операцию
		time.Sleep(50 * time.Millisecond)
		return errors.New("fail")
	}

	d := NewDispatcher(saveFn)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Save(ctx, []int{123})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	if atomic.LoadInt32(&called) == 0 {
		t.Errorf("expected at least one call to save")
	}
}

func TestConfig_Budget(t *testing.T) {
	cfg := Config{AttemptCount: 3, StartTimeout: 100 * time.Millisecond, Multiply: 2}
	assert.Equal(t, 700*time.Millisecond, cfg.Budget())

	assert.Equal(t, DefaultConfig().Budget(), Config{}.Budget())
}
