package queue

import (
	"context"
	"time"
)

// SaveFn сохраняет пачку элементов целиком.
// Ошибка означает неуспех всей пачки.
type SaveFn[E any] = func(ctx context.Context, items []E) error

// StatsListener получает снимок статистики после каждого вывода в лог.
type StatsListener = func(stats Stats)

// Scheduler запускает задачу периодически с фиксированным интервалом.
type Scheduler interface {
	ScheduleAtFixedRate(task func(), initialDelay, period time.Duration)
}
