package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestSymbolMapKeepsInsertionOrder(t *testing.T) {
	var m SymbolMap[int64]
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": 2, " ": 3, "_": 4}`), &m))

	assert.Equal(t, []string{"z", "a", " ", "_"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2," ":3,"_":4}`, string(out))
}

func TestSymbolMapDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var m SymbolMap[string]
	require.NoError(t, json.Unmarshal([]byte(`{"a": "0", "b": "1", "a": "10"}`), &m))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, "10", v)
}

func TestSymbolMapNullAndEmpty(t *testing.T) {
	var m SymbolMap[float64]
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))

	var nilMap *SymbolMap[float64]
	_, ok := nilMap.Get("a")
	assert.False(t, ok)
	assert.Nil(t, nilMap.Keys())
}

func TestSymbolMapLooseIntValues(t *testing.T) {
	var m SymbolMap[LooseInt]
	require.NoError(t, json.Unmarshal([]byte(`{"b": 3.0, "a": 1e3, "c": "7", "d": "x", "e": 2.9}`), &m))

	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, m.Keys())
	for sym, want := range map[string]LooseInt{"b": 3, "a": 1000, "c": 7, "d": 0, "e": 2} {
		got, ok := m.Get(sym)
		assert.True(t, ok, sym)
		assert.Equal(t, want, got, sym)
	}
}

func TestSymbolMapRejectsNonObject(t *testing.T) {
	var m SymbolMap[int64]
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"a": "x"}`), &m))
}

func TestSymbolMapMsgpackOrder(t *testing.T) {
	m := NewSymbolMap[string]()
	m.Set("b", "1")
	m.Set("a", "0")

	b, err := msgpack.Marshal(m)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(bytes.NewReader(b))
	n, err := dec.DecodeMapLen()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	k, err := dec.DecodeString()
	require.NoError(t, err)
	assert.Equal(t, "b", k)
}
