package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTsKvEntry_DataType(t *testing.T) {
	id := uuid.New()
	ts := time.Now()

	assert.Equal(t, BooleanType, NewBoolEntry(id, "active", ts, true).DataType())
	assert.Equal(t, LongType, NewLongEntry(id, "count", ts, 42).DataType())
	assert.Equal(t, DoubleType, NewDoubleEntry(id, "temperature", ts, 21.5).DataType())
	assert.Equal(t, StringType, NewStringEntry(id, "status", ts, "ok").DataType())
	assert.Equal(t, JSONType, NewJSONEntry(id, "meta", ts, json.RawMessage(`{"a":1}`)).DataType())
	assert.Equal(t, UnknownType, (&TsKvEntry{}).DataType())
}

func TestTsKvEntry_Validate(t *testing.T) {
	id := uuid.New()
	ts := time.Now()

	valid := NewLongEntry(id, "count", ts, 1)
	assert.NoError(t, valid.Validate())

	noEntity := NewLongEntry(uuid.Nil, "count", ts, 1)
	assert.ErrorIs(t, noEntity.Validate(), ErrNoEntity)

	noKey := NewLongEntry(id, "", ts, 1)
	assert.ErrorIs(t, noKey.Validate(), ErrEmptyKey)

	noValue := TsKvEntry{EntityID: id, Key: "count", Ts: ts}
	assert.ErrorIs(t, noValue.Validate(), ErrInvalidValue)

	twoValues := NewLongEntry(id, "count", ts, 1)
	s := "x"
	twoValues.StrV = &s
	assert.ErrorIs(t, twoValues.Validate(), ErrInvalidValue)

	badJSON := NewJSONEntry(id, "meta", ts, json.RawMessage(`{`))
	assert.ErrorIs(t, badJSON.Validate(), ErrInvalidValue)
}

func TestTsKvEntry_Bytes(t *testing.T) {
	e := NewDoubleEntry(uuid.New(), "temperature", time.Unix(1700000000, 0).UTC(), 21.5)

	b, err := e.Bytes()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, e.EntityID.String(), decoded["entity_id"])
	assert.Equal(t, "temperature", decoded["key"])
	assert.Equal(t, 21.5, decoded["dbl_v"])
	assert.NotContains(t, decoded, "long_v")
}
