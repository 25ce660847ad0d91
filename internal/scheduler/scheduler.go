package scheduler

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Executor запускает периодические задачи, каждую в своей горутине.
// Паника в задаче логируется и не останавливает ее дальнейшие запуски.
type Executor struct {
	mutex    sync.Mutex
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	closed   bool
}

// NewExecutor создает Executor без задач.
func NewExecutor() *Executor {
	return &Executor{
		closeCh: make(chan struct{}),
	}
}

// ScheduleAtFixedRate запускает task через initialDelay и далее каждые period.
// После Close вызов игнорируется.
func (e *Executor) ScheduleAtFixedRate(task func(), initialDelay, period time.Duration) {
	if period <= 0 {
		zap.L().Error(ErrInvalidPeriod.Error(), zap.Duration("period", period))
		return
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.closed {
		zap.L().Error(ErrClosed.Error())
		return
	}

	e.closedWg.Add(1)
	go e.loop(task, initialDelay, period)
}

// Close останавливает все задачи и дожидается завершения их горутин.
// Уже выполняющийся запуск задачи доработает до конца.
func (e *Executor) Close() {
	e.mutex.Lock()
	if e.closed {
		e.mutex.Unlock()
		return
	}
	e.closed = true
	close(e.closeCh)
	e.mutex.Unlock()

	e.closedWg.Wait()
}

func (e *Executor) loop(task func(), initialDelay, period time.Duration) {
	defer e.closedWg.Done()

	if initialDelay > 0 {
		timer := time.NewTimer(initialDelay)
		select {
		case <-e.closeCh:
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	e.run(task)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-e.closeCh:
			return
		case <-ticker.C:
			e.run(task)
		}
	}
}

func (e *Executor) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("%s: %v", ErrTaskPanic, r))
		}
	}()

	task()
}
