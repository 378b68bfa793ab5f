package compile

import (
	"sync"

	"github.com/dgallion1/formgest/internal/form"
)

// Cache memoizes compiled batches keyed by the canonical content hash
// of the input structure, so identical content is never recompiled or
// resubmitted twice. At most one compilation runs per key at a time;
// concurrent callers for the same key wait for the first result.
// Cached batches are shared and must not be mutated by callers.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Batch
	keyLock map[string]*sync.Mutex
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Batch),
		keyLock: make(map[string]*sync.Mutex),
	}
}

// Compile returns the cached batch for s, compiling it on first use.
// The returned key is the content hash the batch is stored under.
func (c *Cache) Compile(s form.FormStructure) (Batch, string, error) {
	key := s.ContentHash()

	c.mu.Lock()
	if batch, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return batch, key, nil
	}
	lock, ok := c.keyLock[key]
	if !ok {
		lock = &sync.Mutex{}
		c.keyLock[key] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// Another caller may have finished while we waited.
	c.mu.Lock()
	if batch, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return batch, key, nil
	}
	c.mu.Unlock()

	batch, err := Compile(s)
	if err != nil {
		return nil, key, err
	}

	c.mu.Lock()
	c.entries[key] = batch
	delete(c.keyLock, key)
	c.mu.Unlock()

	return batch, key, nil
}

// Len returns the number of cached batches.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
