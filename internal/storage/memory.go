package storage

import "encoding/json"

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	blobs map[string]json.RawMessage

	// SaveCount tracks how many writes happened, by key.
	SaveCount map[string]int
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		blobs:     make(map[string]json.RawMessage),
		SaveCount: make(map[string]int),
	}
}

// Load implements Repository.
func (r *MemoryRepository) Load(key string, v any) (bool, error) {
	data, ok := r.blobs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// Save implements Repository.
func (r *MemoryRepository) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.blobs[key] = data
	r.SaveCount[key]++
	return nil
}

// Delete implements Repository.
func (r *MemoryRepository) Delete(key string) error {
	delete(r.blobs, key)
	return nil
}

// Has reports whether a blob exists under key.
func (r *MemoryRepository) Has(key string) bool {
	_, ok := r.blobs[key]
	return ok
}
