package queue_wrapper

import (
	"sql-batch-queue/internal/partitioner"
	"sql-batch-queue/internal/queue"
)

// Params — параметры набора очередей.
// Queue.LogName используется как префикс имен отдельных очередей.
type Params struct {
	Queue   queue.Params
	Threads int
	Mode    partitioner.Mode
}
