package matchmaking

import "github.com/gridrush/tictactoe-backend/internal/entity"

type queueEntry struct {
	connID   string
	username string
}

// Queue holds connections waiting to be paired, in strict arrival order.
// It is not safe for concurrent use on its own: the gateway serializes
// every mutation behind its event lock.
type Queue struct {
	waiting []queueEntry
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a waiting connection. A connection already waiting keeps
// its original position; a player can never be paired against themselves.
func (that *Queue) Enqueue(connID, username string) {
	for _, entry := range that.waiting {
		if entry.connID == connID {
			return
		}
	}

	that.waiting = append(that.waiting, queueEntry{connID: connID, username: username})
}

// Remove drops the connection from the queue. No-op when absent.
func (that *Queue) Remove(connID string) {
	for i, entry := range that.waiting {
		if entry.connID == connID {
			that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
			return
		}
	}
}

func (that *Queue) Len() int {
	return len(that.waiting)
}

// TryPair pops the two longest-waiting connections and builds a playing
// session: first enqueued gets X, second gets O. Returns nil with no side
// effect while fewer than two connections wait.
func (that *Queue) TryPair() *entity.Session {
	if len(that.waiting) < 2 {
		return nil
	}

	first, second := that.waiting[0], that.waiting[1]
	that.waiting = that.waiting[2:]

	return entity.NewSession(
		&entity.Participant{ConnID: first.connID, Username: first.username},
		&entity.Participant{ConnID: second.connID, Username: second.username},
	)
}
