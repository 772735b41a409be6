// Package presence tracks which users currently have a live realtime
// connection. Entries are process-lifetime only: the registry starts empty
// and clients re-register after a reconnect or a server restart.
package presence

import "sync"

// Registry maps a user id to the handle of its current connection. A user
// has at most one live handle (last registration wins) and a handle belongs
// to exactly one user. The handle index makes disconnect O(1) and lets a
// stale disconnect for an already-replaced handle fall through as a no-op.
type Registry struct {
	mu       sync.RWMutex
	byUser   map[int64]string
	byHandle map[string]int64
}

func NewRegistry() *Registry {
	return &Registry{
		byUser:   make(map[int64]string),
		byHandle: make(map[string]int64),
	}
}

// Register binds userID to handle, replacing any previous handle for that
// user. Re-registration on reconnect is expected and idempotent.
func (r *Registry) Register(userID int64, handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[userID]; ok && old != handle {
		delete(r.byHandle, old)
	}
	if prev, ok := r.byHandle[handle]; ok && prev != userID {
		// the connection re-identified as a different user
		if cur, ok := r.byUser[prev]; ok && cur == handle {
			delete(r.byUser, prev)
		}
	}
	r.byUser[userID] = handle
	r.byHandle[handle] = userID
}

// Unregister removes the entry currently bound to handle. A disconnect for
// a handle that was already replaced by a newer registration is a no-op, so
// late disconnect events never evict a fresh connection.
func (r *Registry) Unregister(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byHandle[handle]
	if !ok {
		return
	}
	delete(r.byHandle, handle)
	if cur, ok := r.byUser[userID]; ok && cur == handle {
		delete(r.byUser, userID)
	}
}

// Resolve returns the handle of the user's live connection, if any.
func (r *Registry) Resolve(userID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handle, ok := r.byUser[userID]
	return handle, ok
}
