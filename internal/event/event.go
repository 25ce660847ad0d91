package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TsKvEntry — одно значение телеметрии сущности в момент времени Ts.
// Заполнено ровно одно из полей значения.
type TsKvEntry struct {
	EntityID uuid.UUID       `json:"entity_id"`
	Key      string          `json:"key"`
	Ts       time.Time       `json:"ts"`
	BoolV    *bool           `json:"bool_v,omitempty"`
	LongV    *int64          `json:"long_v,omitempty"`
	DblV     *float64        `json:"dbl_v,omitempty"`
	StrV     *string         `json:"str_v,omitempty"`
	JSONV    json.RawMessage `json:"json_v,omitempty"`
}

func NewBoolEntry(entityID uuid.UUID, key string, ts time.Time, v bool) TsKvEntry {
	return TsKvEntry{EntityID: entityID, Key: key, Ts: ts, BoolV: &v}
}

func NewLongEntry(entityID uuid.UUID, key string, ts time.Time, v int64) TsKvEntry {
	return TsKvEntry{EntityID: entityID, Key: key, Ts: ts, LongV: &v}
}

func NewDoubleEntry(entityID uuid.UUID, key string, ts time.Time, v float64) TsKvEntry {
	return TsKvEntry{EntityID: entityID, Key: key, Ts: ts, DblV: &v}
}

func NewStringEntry(entityID uuid.UUID, key string, ts time.Time, v string) TsKvEntry {
	return TsKvEntry{EntityID: entityID, Key: key, Ts: ts, StrV: &v}
}

func NewJSONEntry(entityID uuid.UUID, key string, ts time.Time, v json.RawMessage) TsKvEntry {
	return TsKvEntry{EntityID: entityID, Key: key, Ts: ts, JSONV: v}
}

// DataType возвращает тип заполненного значения.
func (e TsKvEntry) DataType() DataType {
	switch {
	case e.BoolV != nil:
		return BooleanType
	case e.LongV != nil:
		return LongType
	case e.DblV != nil:
		return DoubleType
	case e.StrV != nil:
		return StringType
	case e.JSONV != nil:
		return JSONType
	default:
		return UnknownType
	}
}

// Validate проверяет, что у записи есть сущность, ключ и ровно одно значение.
func (e TsKvEntry) Validate() error {
	if e.EntityID == uuid.Nil {
		return ErrNoEntity
	}
	if e.Key == "" {
		return ErrEmptyKey
	}

	values := 0
	for _, set := range []bool{e.BoolV != nil, e.LongV != nil, e.DblV != nil, e.StrV != nil, e.JSONV != nil} {
		if set {
			values++
		}
	}
	if values != 1 {
		return ErrInvalidValue
	}

	if e.JSONV != nil && !json.Valid(e.JSONV) {
		return ErrInvalidValue
	}

	return nil
}

func (e TsKvEntry) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

func (e TsKvEntry) String() string {
	b, err := e.Bytes()
	if err != nil {
		zap.L().Error(err.Error())
	}
	return string(b)
}
