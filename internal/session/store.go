package session

import "sync"

// Storage keys for the persisted identities.
const (
	KeyAdminToken      = "adminToken"
	KeyAdminUser       = "adminUser"
	KeyCustomerToken   = "customerToken"
	KeyCustomerProfile = "customerProfile"
)

// Store is the persistent key/value storage the guard reads identities from.
// It is injected so the guard never touches ambient global state.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Clear removes every given key from the store.
func Clear(s Store, keys ...string) {
	for _, key := range keys {
		s.Delete(key)
	}
}

// MemoryStore is a concurrency-safe in-memory Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
