package session

import "sync"

// Fence guards effect-driven re-fetching against stale responses. Every
// outgoing fetch is tagged with a monotonically increasing token for its
// parameter set; a response is admitted only if its token is still the
// latest issued for that set. A date change mid-flight therefore cannot
// let the older roster overwrite the newer one.
type Fence struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewFence() *Fence {
	return &Fence{latest: make(map[string]uint64)}
}

// Issue returns the next token for key and makes it the latest.
func (f *Fence) Issue(key string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[key]++
	return f.latest[key]
}

// Admit reports whether token is still the latest issued for key.
// Responses carrying an older token must be discarded.
func (f *Fence) Admit(key string, token uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest[key] == token
}

// Invalidate bumps the token for key without issuing it to anyone, so
// every in-flight fetch for that key becomes stale.
func (f *Fence) Invalidate(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[key]++
}
