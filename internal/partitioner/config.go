package partitioner

// settings — неизменяемый снимок режима. Заменяется целиком при переключении.
type settings[T any] struct {
	mode  Mode
	count int
	keyFn func(T) string
	cycle *shardCycle
}
