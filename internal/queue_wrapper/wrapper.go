package queue_wrapper

import (
	"context"
	"fmt"
	"sql-batch-queue/internal/partitioner"
	"sql-batch-queue/internal/queue"

	"go.uber.org/zap"
)

// Wrapper распределяет элементы между Threads независимыми очередями.
// В режиме partitioner.KeyMode элементы с одним ключом всегда попадают в одну очередь,
// поэтому порядок их сохранения совпадает с порядком добавления.
// В режимах round_robin и random элементы одного ключа расходятся по разным
// очередям и могут сохраняться в другом порядке.
type Wrapper[E any] struct {
	queues      []*queue.BlockingQueue[E]
	names       []string
	partitioner *partitioner.Partitioner[E]
}

// NewWrapper создает Threads очередей с именами "<LogName>-<i>".
// keyFn нужен только для режима partitioner.KeyMode.
func NewWrapper[E any](params Params, keyFn func(E) string) (*Wrapper[E], error) {
	if params.Threads <= 0 {
		return nil, ErrInvalidThreads
	}

	mode := params.Mode
	if mode == "" {
		mode = partitioner.KeyMode
	}

	p := partitioner.NewPartitioner[E]()
	if err := p.Configure(mode, keyFn, params.Threads); err != nil {
		return nil, err
	}
	if !mode.KeepsKeyOrder() && params.Threads > 1 {
		zap.L().Warn(
			"partition mode does not keep per-key order",
			zap.String("queue", params.Queue.LogName),
			zap.String("mode", string(mode)),
		)
	}

	w := &Wrapper[E]{
		queues:      make([]*queue.BlockingQueue[E], params.Threads),
		names:       make([]string, params.Threads),
		partitioner: p,
	}

	for i := range params.Threads {
		queueParams := params.Queue
		queueParams.LogName = fmt.Sprintf("%s-%d", params.Queue.LogName, i)

		q, err := queue.NewBlockingQueue[E](queueParams)
		if err != nil {
			return nil, err
		}

		w.queues[i] = q
		w.names[i] = queueParams.LogName
	}

	return w, nil
}

// Init запускает воркеры всех очередей с общей функцией сохранения.
func (w *Wrapper[E]) Init(ctx context.Context, scheduler queue.Scheduler, saveFn queue.SaveFn[E]) error {
	for i, q := range w.queues {
		if err := q.Init(ctx, scheduler, saveFn); err != nil {
			zap.L().Error(err.Error(), zap.String("queue", w.names[i]))
			return err
		}
	}

	return nil
}

// Add кладет элемент в очередь, выбранную partitioner.
func (w *Wrapper[E]) Add(item E) *queue.Future {
	index, err := w.partitioner.Partition(item)
	if err != nil {
		zap.L().Error(err.Error())
		index = 0
	}

	return w.queues[index].Add(item)
}

// Destroy останавливает воркеры всех очередей.
// Несохраненные элементы остаются неразрешенными, как и в queue.BlockingQueue.
func (w *Wrapper[E]) Destroy() {
	for _, q := range w.queues {
		q.Destroy()
	}
}

// Wait блокируется до остановки всех воркеров или отмены ctx.
func (w *Wrapper[E]) Wait(ctx context.Context) error {
	for _, q := range w.queues {
		select {
		case <-q.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Len возвращает суммарное число элементов во всех буферах.
func (w *Wrapper[E]) Len() int {
	total := 0
	for _, q := range w.queues {
		total += q.Len()
	}
	return total
}

// AddStatsListener подписывает listener на статистику каждой очереди.
func (w *Wrapper[E]) AddStatsListener(listener func(queueName string, stats queue.Stats)) {
	for i, q := range w.queues {
		name := w.names[i]
		q.AddStatsListener(func(stats queue.Stats) {
			listener(name, stats)
		})
	}
}
