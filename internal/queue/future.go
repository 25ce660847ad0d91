package queue

import "context"

// Future — одноразовый результат сохранения элемента.
// Разрешается воркером очереди ровно один раз: успехом или ошибкой пачки.
// Если очередь уничтожена до того, как элемент попал в пачку,
// Future не разрешается никогда.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Done возвращает канал, который закрывается после разрешения.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsDone сообщает, разрешен ли Future.
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err возвращает результат сохранения или ErrPending, если результата еще нет.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return ErrPending
	}
}

// Wait блокируется до разрешения Future или отмены контекста.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve вызывается только воркером и только один раз для каждого элемента.
func (f *Future) resolve(err error) {
	f.err = err
	close(f.done)
}
