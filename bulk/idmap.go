package bulk

import "fmt"

// IDMap resolves user-supplied node identifiers to the dense 0-based indices
// the server uses as on-wire node handles. Uniqueness is checked within a
// namespace, while indices are drawn from one global counter so every node
// in the session gets a distinct index.
//
// The map lives for the whole session and is owned by it; raw identifiers
// are compared as exact byte strings, with no normalisation.
type IDMap struct {
	next   uint64
	spaces map[string]map[string]uint64
}

// NewIDMap returns an empty identifier map.
func NewIDMap() *IDMap {
	return &IDMap{spaces: make(map[string]map[string]uint64)}
}

// Register assigns the next dense index to (namespace, raw). Registering the
// same pair twice is fatal.
func (m *IDMap) Register(namespace, raw string) (uint64, error) {
	space, ok := m.spaces[namespace]
	if !ok {
		space = make(map[string]uint64)
		m.spaces[namespace] = space
	}
	if _, exists := space[raw]; exists {
		return 0, fmt.Errorf("node identifier '%s' used multiple times", raw)
	}
	idx := m.next
	m.next++
	space[raw] = idx
	return idx, nil
}

// Resolve returns the index registered for (namespace, raw).
func (m *IDMap) Resolve(namespace, raw string) (uint64, error) {
	if idx, ok := m.spaces[namespace][raw]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("relation refers to unknown node identifier '%s'", raw)
}

// Len returns the number of registered identifiers across all namespaces.
func (m *IDMap) Len() int {
	return int(m.next)
}
