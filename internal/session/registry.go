package session

import (
	"strconv"
	"sync"

	"github.com/gridrush/tictactoe-backend/internal/entity"
)

// Registry owns every active session, keyed by a monotonically assigned
// id. Ids are never reused within a process lifetime, so a stale id from
// a destroyed game can never address a newer one.
type Registry struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[string]*entity.Session
}

func NewRegistry() *Registry {
	return &Registry{
		nextID:   1,
		sessions: make(map[string]*entity.Session),
	}
}

// Create assigns a fresh id, stores the session under it, and returns it.
func (that *Registry) Create(sess *entity.Session) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := strconv.FormatInt(that.nextID, 10)
	that.nextID++

	sess.ID = id
	that.sessions[id] = sess

	return id
}

// Get returns the session for id, or false when the id is unknown or
// already deleted. A miss is not an error at this layer.
func (that *Registry) Get(id string) (*entity.Session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	sess, ok := that.sessions[id]

	return sess, ok
}

// Update applies the mutator to the stored session, if it still exists.
func (that *Registry) Update(id string, mutate func(*entity.Session)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sess, ok := that.sessions[id]; ok {
		mutate(sess)
	}
}

// Delete removes the session. No-op when absent; the id is never reissued.
func (that *Registry) Delete(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, id)
}
