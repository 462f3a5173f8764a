package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Client used by tests and offline development.
// FailPuts makes the next n Put calls fail with ErrUnavailable so sync
// retry behavior can be exercised.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	puts     int
	failPuts int
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, collection, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPuts > 0 {
		m.failPuts--
		return fmt.Errorf("%w: injected failure", ErrUnavailable)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	m.docs[objectKey(collection, id)] = body
	m.puts++
	return nil
}

func (m *Memory) Get(_ context.Context, collection, id string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[objectKey(collection, id)]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(body, out)
}

// FailPuts arms n injected Put failures.
func (m *Memory) FailPuts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPuts = n
}

// Len returns the number of stored documents.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// Puts returns how many Put calls have succeeded.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Doc returns the stored raw document, if present.
func (m *Memory) Doc(collection, id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[objectKey(collection, id)]
	return body, ok
}
