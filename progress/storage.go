package progress

// Storage is the durable key-value backend the store persists into. Get
// returns an empty string with a nil error when the key has never been
// written.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStorage keeps values in a plain map. Used by tests and for runs
// that should not leave anything on disk.
type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}
