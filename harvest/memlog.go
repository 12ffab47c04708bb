package harvest

import (
	"context"
	"sync"
)

type (
	MemoryLog struct {
		sync.Mutex
		entries []Capture
	}
)

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (m *MemoryLog) Append(_ context.Context, c Capture) error {
	m.Lock()
	m.entries = append(m.entries, c)
	m.Unlock()
	return nil
}

func (m *MemoryLog) List(_ context.Context) ([]Capture, error) {
	m.Lock()
	defer m.Unlock()
	out := make([]Capture, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryLog) Len(_ context.Context) (int, error) {
	m.Lock()
	defer m.Unlock()
	return len(m.entries), nil
}
