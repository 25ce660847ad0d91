package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dispatcher оборачивает функцию сохранения пачки повторными попытками.
// Пачка повторяется целиком: частичного успеха не бывает.
type Dispatcher[E any] struct {
	saveFn SaveFn[E]
	config Config
}

// NewDispatcher создает Dispatcher с параметрами backoff по умолчанию.
func NewDispatcher[E any](saveFn SaveFn[E]) *Dispatcher[E] {
	return NewDispatcherWithConfig(saveFn, DefaultConfig())
}

// NewDispatcherWithConfig создает Dispatcher с заданными параметрами backoff.
// Нулевые поля config заменяются значениями по умолчанию.
func NewDispatcherWithConfig[E any](saveFn SaveFn[E], config Config) *Dispatcher[E] {
	return &Dispatcher[E]{
		saveFn: saveFn,
		config: config.withDefaults(),
	}
}

// Save выполняет сохранение с механизмом повторных попыток (backoff).
// Сигнатура совпадает с функцией сохранения очереди.
func (d *Dispatcher[E]) Save(ctx context.Context, items []E) error {
	return d.saveWithBackoff(ctx, items)
}

// saveWithBackoff повторяет сохранение, увеличивая таймаут попытки в Multiply раз.
// Если контекст отменен — возвращается ошибка контекста.
// Если попытки закончились — возвращается ErrBackoffTimeout вместе с последней ошибкой.
func (d *Dispatcher[E]) saveWithBackoff(ctx context.Context, items []E) error {
	timeout := d.config.StartTimeout

	var lastErr error
	for range d.config.AttemptCount {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := d.singleSave(ctx, timeout, items); err != nil {
				lastErr = err
				timeout = time.Duration(float64(timeout) * d.config.Multiply)
				continue
			}
		}

		return nil
	}

	return fmt.Errorf("%w: %w", ErrBackoffTimeout, lastErr)
}

// singleSave выполняет одну попытку сохранения с ограничением по времени.
func (d *Dispatcher[E]) singleSave(ctx context.Context, timeout time.Duration, items []E) error {
	ctxT, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.saveFn(ctxT, items); err != nil {
		zap.L().Error(err.Error(), zap.Int("count", len(items)), zap.Duration("timeout", timeout))
		return err
	}

	return nil
}
