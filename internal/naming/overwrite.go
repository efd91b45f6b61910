package naming

import "sync"

// Overwrite records that Key, first claimed by Previous, was replaced by a
// record from Current.
type Overwrite struct {
	Key      string
	Previous string
	Current  string
}

// OwnerTracker remembers which source (split or dataset) last claimed each
// image name during a merge, so that last-writer-wins replacements can be
// reported instead of passing silently. All methods are goroutine-safe.
type OwnerTracker struct {
	mu         sync.Mutex
	owners     map[string]string // image name -> source that owns it
	overwrites []Overwrite
}

// NewOwnerTracker creates a ready-to-use tracker.
func NewOwnerTracker() *OwnerTracker {
	return &OwnerTracker{owners: make(map[string]string)}
}

// Claim assigns key to source. If another source held key, the replacement
// is recorded and returned with ok set. Re-claiming by the same source is
// not an overwrite.
func (t *OwnerTracker) Claim(key, source string) (ow Overwrite, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, exists := t.owners[key]
	t.owners[key] = source
	if !exists || prev == source {
		return Overwrite{}, false
	}
	ow = Overwrite{Key: key, Previous: prev, Current: source}
	t.overwrites = append(t.overwrites, ow)
	return ow, true
}

// Overwrites returns the replacements recorded so far, in claim order.
func (t *OwnerTracker) Overwrites() []Overwrite {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Overwrite, len(t.overwrites))
	copy(out, t.overwrites)
	return out
}
