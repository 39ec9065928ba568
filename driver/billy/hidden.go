package billy

import (
	"strings"
	"sync"
)

// hiddenMarks records which memory entities are hidden. Keys are registry
// identity keys (no trailing separator).
type hiddenMarks struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func newHiddenMarks() *hiddenMarks {
	return &hiddenMarks{paths: make(map[string]struct{})}
}

func (m *hiddenMarks) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.paths[key]
	return ok
}

func (m *hiddenMarks) set(key string, hidden bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hidden {
		m.paths[key] = struct{}{}
		return
	}
	delete(m.paths, key)
}

// drop forgets key and everything beneath it.
func (m *hiddenMarks) drop(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := range m.paths {
		if within(p, key) {
			delete(m.paths, p)
		}
	}
}

// move re-keys every mark at or beneath src to dst.
func (m *hiddenMarks) move(src, dst string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := range m.paths {
		if within(p, src) {
			delete(m.paths, p)
			m.paths[dst+strings.TrimPrefix(p, src)] = struct{}{}
		}
	}
}

// copy duplicates every mark at or beneath src under dst.
func (m *hiddenMarks) copy(src, dst string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var added []string
	for p := range m.paths {
		if within(p, src) {
			added = append(added, dst+strings.TrimPrefix(p, src))
		}
	}
	for _, p := range added {
		m.paths[p] = struct{}{}
	}
}

func within(p, base string) bool {
	return p == base || strings.HasPrefix(p, base+"/")
}
