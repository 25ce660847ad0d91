package queue

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// buffer — неограниченная FIFO очередь: много писателей, один читатель.
type buffer[E any] struct {
	mutex  sync.Mutex
	items  deque.Deque[element[E]]
	notify chan struct{}
}

func newBuffer[E any]() *buffer[E] {
	return &buffer[E]{
		notify: make(chan struct{}, 1),
	}
}

// push добавляет элемент в конец и будит читателя. Никогда не блокируется.
func (b *buffer[E]) push(e element[E]) {
	b.mutex.Lock()
	b.items.PushBack(e)
	b.mutex.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// poll ждет первый элемент не дольше timeout.
// Возвращает false, если за это время ничего не пришло.
func (b *buffer[E]) poll(ctx context.Context, timeout time.Duration) (element[E], bool, error) {
	if e, ok := b.tryPop(); ok {
		return e, true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			var zero element[E]
			return zero, false, ctx.Err()
		case <-timer.C:
			e, ok := b.tryPop()
			return e, ok, nil
		case <-b.notify:
			if e, ok := b.tryPop(); ok {
				return e, true, nil
			}
		}
	}
}

// drainTo без ожидания переносит в dst не более limit уже доступных элементов.
func (b *buffer[E]) drainTo(dst []element[E], limit int) []element[E] {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for n := 0; n < limit && b.items.Len() > 0; n++ {
		dst = append(dst, b.items.PopFront())
	}

	return dst
}

func (b *buffer[E]) len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.items.Len()
}

func (b *buffer[E]) tryPop() (element[E], bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.items.Len() == 0 {
		var zero element[E]
		return zero, false
	}

	return b.items.PopFront(), true
}
