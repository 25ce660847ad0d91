package partitioner

import (
	"hash/fnv"
	"math/rand"
	"sync/atomic"

	"go.uber.org/zap"
)

// Partitioner выбирает шард для элемента по текущему режиму.
// Режим можно переключать на лету: Partition всегда видит целостный снимок настроек.
type Partitioner[T any] struct {
	current atomic.Pointer[settings[T]]
}

// NewPartitioner создаёт Partitioner с одним шардом в режиме round-robin.
func NewPartitioner[T any]() *Partitioner[T] {
	p := &Partitioner[T]{}

	p.current.Store(&settings[T]{
		mode:  defaultMode,
		count: 1,
		cycle: newShardCycle(1),
	})

	return p
}

// Partition возвращает индекс шарда в диапазоне [0, Count()).
func (p *Partitioner[T]) Partition(item T) (int, error) {
	s := p.current.Load()

	switch s.mode {
	case KeyMode:
		return shardForKey(s.keyFn(item), s.count), nil
	case RoundRobinMode:
		return s.cycle.pick(), nil
	case RandomMode:
		return rand.Intn(s.count), nil
	}

	zap.L().Error(ErrInvalidMode.Error(), zap.String("mode", string(s.mode)))
	return 0, ErrInvalidMode
}

func (p *Partitioner[T]) Count() int {
	return p.current.Load().count
}

func (p *Partitioner[T]) Mode() Mode {
	return p.current.Load().mode
}

// SetKeyMode направляет элементы с одинаковым ключом keyFn в один шард.
func (p *Partitioner[T]) SetKeyMode(keyFn func(item T) string, count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}
	if keyFn == nil {
		return ErrInvalidKey
	}

	p.current.Store(&settings[T]{mode: KeyMode, count: count, keyFn: keyFn})

	return nil
}

// SetRoundRobinMode раздает элементы шардам по очереди.
func (p *Partitioner[T]) SetRoundRobinMode(count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}

	p.current.Store(&settings[T]{mode: RoundRobinMode, count: count, cycle: newShardCycle(count)})

	return nil
}

// SetRandomMode отправляет каждый элемент в случайный шард.
func (p *Partitioner[T]) SetRandomMode(count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}

	p.current.Store(&settings[T]{mode: RandomMode, count: count})

	return nil
}

// Configure переключает Partitioner в режим mode.
// keyFn нужен только для KeyMode.
func (p *Partitioner[T]) Configure(mode Mode, keyFn func(item T) string, count int) error {
	switch mode {
	case KeyMode:
		return p.SetKeyMode(keyFn, count)
	case RoundRobinMode:
		return p.SetRoundRobinMode(count)
	case RandomMode:
		return p.SetRandomMode(count)
	}

	return ErrInvalidMode
}

// shardForKey отображает FNV-1a хэш ключа в [0, count).
func shardForKey(key string, count int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return int(h.Sum32() % uint32(count))
}
