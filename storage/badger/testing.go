package badger

import "github.com/poiesic/compass/storage"

// NewMemoryRepository creates an in-memory repair journal for testing.
// Caller must close both the repository and the backend when done.
func NewMemoryRepository() (storage.RepairRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewRepairRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
