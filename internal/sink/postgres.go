package sink

import (
	"context"
	"fmt"
	"sql-batch-queue/internal/event"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const defaultTable = "ts_kv"

var tsKvColumns = []string{"entity_id", "key", "ts", "bool_v", "long_v", "dbl_v", "str_v", "json_v"}

// CopyFromer реализуется *pgxpool.Pool, *pgx.Conn и pgx.Tx.
type CopyFromer interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresSink сохраняет пачку записей одним COPY.
type PostgresSink struct {
	db    CopyFromer
	table pgx.Identifier
}

func NewPostgresSink(db CopyFromer, cfg PostgresConfig) *PostgresSink {
	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	return &PostgresSink{
		db:    db,
		table: pgx.Identifier{table},
	}
}

// Save копирует все записи в таблицу. Любая ошибка означает,
// что не сохранилась вся пачка: COPY выполняется атомарно.
func (s *PostgresSink) Save(ctx context.Context, entries []event.TsKvEntry) error {
	if len(entries) == 0 {
		return nil
	}

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			zap.L().Error(err.Error())
			return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
	}

	copied, err := s.db.CopyFrom(ctx, s.table, tsKvColumns, pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		return tsKvRow(entries[i]), nil
	}))
	if err != nil {
		zap.L().Error(err.Error())
		return MapError(err)
	}

	if copied != int64(len(entries)) {
		return fmt.Errorf("%w: copied %d of %d rows", ErrPartialCopy, copied, len(entries))
	}

	return nil
}

func tsKvRow(e event.TsKvEntry) []any {
	var jsonV any
	if e.JSONV != nil {
		jsonV = string(e.JSONV)
	}

	return []any{
		e.EntityID,
		e.Key,
		e.Ts.UnixMilli(),
		e.BoolV,
		e.LongV,
		e.DblV,
		e.StrV,
		jsonV,
	}
}
