package model

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string to string mapping that remembers insertion order.
// Keys are unique; setting an existing key replaces its value in place, so the
// last write wins while the key keeps its original position.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap creates an empty map with room for size keys.
func NewOrderedMap(size int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0, size),
		values: make(map[string]string, size),
	}
}

// Set stores value under key.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Append joins value onto an existing key using sep, or sets it when the key is new.
func (m *OrderedMap) Append(key, value, sep string) {
	if existing, ok := m.values[key]; ok {
		m.values[key] = existing + sep + value
		return
	}
	m.Set(key, value)
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len is safe to call on a nil map.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each pair in order until fn returns false.
func (m *OrderedMap) Range(fn func(key, value string) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// MarshalJSON writes the map as a JSON object with keys in insertion order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
