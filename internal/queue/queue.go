package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BlockingQueue накапливает элементы от множества писателей и сохраняет их
// пачками через SaveFn в одном фоновом воркере.
type BlockingQueue[E any] struct {
	params   Params
	buffer   *buffer[E]
	counters counters
	saveFn   SaveFn[E]

	listeners      []StatsListener
	listenersMutex sync.RWMutex

	mutex     sync.Mutex
	cancel    context.CancelFunc
	destroyed bool
	done      chan struct{}
}

// NewBlockingQueue создает очередь с параметрами params.
// Воркер не запускается до вызова Init.
func NewBlockingQueue[E any](params Params) (*BlockingQueue[E], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &BlockingQueue[E]{
		params: params,
		buffer: newBuffer[E](),
		done:   make(chan struct{}),
	}, nil
}

// Init запускает воркер и регистрирует вывод статистики в scheduler.
// Контекст ctx ограничивает жизнь воркера, его значения передаются в saveFn.
func (q *BlockingQueue[E]) Init(ctx context.Context, scheduler Scheduler, saveFn SaveFn[E]) error {
	if scheduler == nil {
		return ErrNilScheduler
	}
	if saveFn == nil {
		return ErrNilSaveFn
	}

	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.destroyed {
		return ErrDestroyed
	}
	if q.cancel != nil {
		return ErrAlreadyInitialized
	}

	ctx, q.cancel = context.WithCancel(ctx)
	q.saveFn = saveFn

	go q.process(ctx)

	scheduler.ScheduleAtFixedRate(q.reportStats, q.params.StatsPrintInterval, q.params.StatsPrintInterval)

	return nil
}

// Destroy просит воркер остановиться. Текущий вызов saveFn не прерывается.
// Оставшиеся в буфере элементы не сохраняются, их Future не разрешаются.
func (q *BlockingQueue[E]) Destroy() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.destroyed {
		return
	}
	q.destroyed = true

	if q.cancel == nil {
		close(q.done)
		return
	}

	q.cancel()
}

// Done закрывается после выхода воркера.
func (q *BlockingQueue[E]) Done() <-chan struct{} {
	return q.done
}

// Add кладет элемент в буфер и сразу возвращает его Future.
// Размер буфера не ограничен.
func (q *BlockingQueue[E]) Add(item E) *Future {
	future := newFuture()
	q.buffer.push(element[E]{
		item:   item,
		future: future,
	})
	q.counters.added.Add(1)

	return future
}

// Len возвращает текущее число элементов в буфере.
func (q *BlockingQueue[E]) Len() int {
	return q.buffer.len()
}

// AddStatsListener подписывает listener на периодические снимки статистики.
func (q *BlockingQueue[E]) AddStatsListener(listener StatsListener) {
	q.listenersMutex.Lock()
	defer q.listenersMutex.Unlock()

	q.listeners = append(q.listeners, listener)
}

// process — цикл воркера: ожидание, вычитка пачки, сохранение, разрешение Future
// и пауза после неполной пачки.
func (q *BlockingQueue[E]) process(ctx context.Context) {
	defer close(q.done)

	saveCtx := context.WithoutCancel(ctx)
	batch := make([]element[E], 0, q.params.BatchSize)

	for {
		if ctx.Err() != nil {
			q.logInterrupted()
			return
		}

		start := time.Now()

		first, ok, err := q.buffer.poll(ctx, q.params.MaxDelay)
		if err != nil {
			q.logInterrupted()
			return
		}
		if !ok {
			continue
		}

		batch = append(batch, first)
		batch = q.buffer.drainTo(batch, q.params.BatchSize-1)
		fullPack := len(batch) == q.params.BatchSize

		q.flush(saveCtx, batch)

		clear(batch)
		batch = batch[:0]

		// неудачная неполная пачка тоже ждет паузу
		if fullPack {
			continue
		}

		if err := q.pace(ctx, start); err != nil {
			q.logInterrupted()
			return
		}
	}
}

// flush сохраняет пачку и разрешает все ее Future одним и тем же результатом.
func (q *BlockingQueue[E]) flush(ctx context.Context, batch []element[E]) {
	items := make([]E, len(batch))
	for i, e := range batch {
		items[i] = e.item
	}

	zap.L().Debug(
		"going to save entities",
		zap.String("queue", q.params.LogName),
		zap.Int("count", len(items)),
	)

	err := q.save(ctx, items)
	if err != nil {
		q.counters.failed.Add(int64(len(batch)))
		zap.L().Error(
			"failed to save entities",
			zap.String("queue", q.params.LogName),
			zap.Int("count", len(items)),
			zap.Error(err),
		)
	} else {
		q.counters.saved.Add(int64(len(batch)))
	}

	for _, e := range batch {
		e.future.resolve(err)
	}
}

func (q *BlockingQueue[E]) save(ctx context.Context, items []E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSavePanic, r)
		}
	}()

	return q.saveFn(ctx, items)
}

// pace досыпает остаток MaxDelay с момента начала ожидания,
// чтобы при малой нагрузке не сохранять почти пустые пачки подряд.
func (q *BlockingQueue[E]) pace(ctx context.Context, start time.Time) error {
	remaining := q.params.MaxDelay - time.Since(start)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reportStats выводит статистику в лог и обнуляет счетчики.
func (q *BlockingQueue[E]) reportStats() {
	stats := q.counters.snapshot(q.buffer.len())

	zap.L().Info(
		"queue stats",
		zap.String("queue", q.params.LogName),
		zap.Int("queue_size", stats.QueueSize),
		zap.Int64("total_added", stats.TotalAdded),
		zap.Int64("total_saved", stats.TotalSaved),
		zap.Int64("total_failed", stats.TotalFailed),
	)

	q.listenersMutex.RLock()
	defer q.listenersMutex.RUnlock()

	for _, listener := range q.listeners {
		listener(stats)
	}
}

func (q *BlockingQueue[E]) logInterrupted() {
	zap.L().Info("queue polling was interrupted", zap.String("queue", q.params.LogName))
}
