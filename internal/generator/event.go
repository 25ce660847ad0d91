package generator

import "sql-batch-queue/internal/event"

type Entry struct {
	Entry event.TsKvEntry
	Meta  Meta
}

type Meta struct {
	IsInvalid bool
}
