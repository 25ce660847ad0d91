package queue

import "sync/atomic"

// Stats — снимок статистики очереди за последний интервал.
type Stats struct {
	QueueSize   int
	TotalAdded  int64
	TotalSaved  int64
	TotalFailed int64
}

type counters struct {
	added  atomic.Int64
	saved  atomic.Int64
	failed atomic.Int64
}

// snapshot читает и обнуляет счетчики.
func (c *counters) snapshot(queueSize int) Stats {
	return Stats{
		QueueSize:   queueSize,
		TotalAdded:  c.added.Swap(0),
		TotalSaved:  c.saved.Swap(0),
		TotalFailed: c.failed.Swap(0),
	}
}
