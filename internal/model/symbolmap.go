package model

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SymbolMap is a symbol-keyed JSON object that remembers key insertion order.
// The zero value is an empty map.
type SymbolMap[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

func NewSymbolMap[V any]() *SymbolMap[V] {
	return &SymbolMap[V]{om: orderedmap.New[string, V]()}
}

// Set overwrites existing keys in place.
func (m *SymbolMap[V]) Set(key string, v V) {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}
	m.om.Set(key, v)
}

func (m *SymbolMap[V]) Get(key string) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

func (m *SymbolMap[V]) Keys() []string {
	if m == nil || m.om == nil {
		return nil
	}
	out := make([]string, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

func (m *SymbolMap[V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

func (m *SymbolMap[V]) UnmarshalJSON(b []byte) error {
	m.om = orderedmap.New[string, V]()
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	return m.om.UnmarshalJSON(b)
}

func (m SymbolMap[V]) MarshalJSON() ([]byte, error) {
	if m.om == nil || m.om.Len() == 0 {
		return []byte("{}"), nil
	}
	return m.om.MarshalJSON()
}

var _ msgpack.CustomEncoder = SymbolMap[int]{}

// EncodeMsgpack writes the map in insertion order.
func (m SymbolMap[V]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	if m.om == nil {
		return nil
	}
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if err := enc.EncodeString(p.Key); err != nil {
			return err
		}
		if err := enc.Encode(p.Value); err != nil {
			return err
		}
	}
	return nil
}
