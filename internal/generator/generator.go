package generator

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"sql-batch-queue/internal/event"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	defaultEntityCount = 100
	defaultInvalidRate = 0.0

	tickPeriod   = 10 * time.Millisecond
	listenBuffer = 4096
)

var (
	statuses = [...]string{
		"online",
		"offline",
		"maintenance",
		"alarm",
	}
)

// Generator генерирует синтетическую телеметрию для набора сущностей.
type Generator struct {
	entities    []uuid.UUID
	invalidRate atomic.Value
	mode        atomic.Value

	listeners      []func(count int)
	listenersMutex sync.RWMutex

	closeCh  chan struct{}
	closedWg sync.WaitGroup
	closed   atomic.Bool
}

// NewGenerator создает генератор для entityCount случайных сущностей.
func NewGenerator(entityCount int) *Generator {
	if entityCount <= 0 {
		entityCount = defaultEntityCount
	}

	g := &Generator{
		entities: make([]uuid.UUID, entityCount),
		closeCh:  make(chan struct{}),
	}

	for i := range g.entities {
		g.entities[i] = uuid.New()
	}

	g.invalidRate.Store(defaultInvalidRate)
	g.mode.Store(defaultMode)

	return g
}

// SetMode меняет режим генерации для Listen.
func (g *Generator) SetMode(mode Mode) error {
	switch mode {
	case RegularMode, PickLoadMode, NightMode:
		g.mode.Store(mode)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// SetInvalidRate задает долю записей без значения.
func (g *Generator) SetInvalidRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return ErrInvalidRate
	}

	g.invalidRate.Store(rate)
	return nil
}

// AddPostCreateEventsListener подписывает listener на число записей,
// созданных за один тик.
func (g *Generator) AddPostCreateEventsListener(listener func(count int)) {
	g.listenersMutex.Lock()
	defer g.listenersMutex.Unlock()

	g.listeners = append(g.listeners, listener)
}

// Entry создает одну случайную запись телеметрии.
func (g *Generator) Entry() Entry {
	entityID := g.entities[mrand.Intn(len(g.entities))]
	ts := time.Now()

	if mrand.Float64() < g.invalidRate.Load().(float64) {
		return Entry{
			Entry: event.TsKvEntry{EntityID: entityID, Key: "temperature", Ts: ts},
			Meta:  Meta{IsInvalid: true},
		}
	}

	var e event.TsKvEntry
	switch mrand.Intn(5) {
	case 0:
		e = event.NewDoubleEntry(entityID, "temperature", ts, 15+mrand.Float64()*20)
	case 1:
		e = event.NewLongEntry(entityID, "counter", ts, mrand.Int63n(1_000_000))
	case 2:
		e = event.NewBoolEntry(entityID, "active", ts, mrand.Intn(2) == 1)
	case 3:
		e = event.NewStringEntry(entityID, "status", ts, statuses[mrand.Intn(len(statuses))])
	default:
		meta, _ := json.Marshal(map[string]any{"rssi": -mrand.Intn(100), "fw": "1.0.3"})
		e = event.NewJSONEntry(entityID, "meta", ts, meta)
	}

	return Entry{Entry: e}
}

// Listen запускает генерацию в текущем режиме.
// Канал закрывается после Close.
func (g *Generator) Listen() <-chan Entry {
	out := make(chan Entry, listenBuffer)

	g.closedWg.Add(1)
	go func() {
		defer g.closedWg.Done()
		defer close(out)

		ticker := time.NewTicker(tickPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-g.closeCh:
				return
			case <-ticker.C:
				count := g.countForTick()
				for range count {
					select {
					case out <- g.Entry():
					case <-g.closeCh:
						return
					}
				}
				if count > 0 {
					g.notify(count)
				}
			}
		}
	}()

	return out
}

// Close останавливает все запущенные Listen.
func (g *Generator) Close() {
	if g.closed.Swap(true) {
		return
	}

	close(g.closeCh)
	g.closedWg.Wait()
}

func (g *Generator) countForTick() int {
	switch g.mode.Load().(Mode) {
	case PickLoadMode:
		return pickLoadMinEntries + mrand.Intn(pickLoadMaxEntries-pickLoadMinEntries+1)
	case NightMode:
		if mrand.Float64() < nightModeEntryProb {
			return 1
		}
	default:
		if mrand.Float64() < regularModeEntryProb {
			return 1
		}
	}
	return 0
}

func (g *Generator) notify(count int) {
	g.listenersMutex.RLock()
	defer g.listenersMutex.RUnlock()

	for _, listener := range g.listeners {
		listener(count)
	}
}
