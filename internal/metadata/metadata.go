// Package metadata implements the ordered key/value mapping attached to a
// protocol response. Keys keep their first-insertion position so that a
// response can be rendered header-by-header in a stable order.
package metadata

// M is an ordered string mapping. The zero value is not usable, use New.
//
// M is owned by a single request and is not safe for concurrent use.
type M struct {
	keys   []string
	values map[string]string
}

func New() *M {
	return &M{
		values: make(map[string]string),
	}
}

// Set adds key with the given value, overwriting any previous value. A key
// keeps the position of its first insertion.
func (m *M) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or "" when the key is absent.
func (m *M) Get(key string) string {
	return m.values[key]
}

// Has reports whether key is present, distinguishing an absent key from an
// empty value.
func (m *M) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared with
// the mapping and must not be modified.
func (m *M) Keys() []string {
	return m.keys
}

func (m *M) Len() int {
	return len(m.keys)
}
