package partitioner

import "sync/atomic"

// shardCycle выдает индексы 0..count-1 по кругу без блокировок.
type shardCycle struct {
	next  atomic.Uint64
	count uint64
}

func newShardCycle(count int) *shardCycle {
	return &shardCycle{count: uint64(count)}
}

func (c *shardCycle) pick() int {
	return int((c.next.Add(1) - 1) % c.count)
}
