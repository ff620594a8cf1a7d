package socket

import (
	"errors"
	"sync"

	socketio "github.com/googollee/go-socket.io"
)

// maxConnectionsPerUser bounds how many live sockets one account may
// hold (multiple tabs/devices); further connects are refused.
const maxConnectionsPerUser = 5

// ErrTooManyConnections is returned by Bind when a user hits the cap.
var ErrTooManyConnections = errors.New("too many connections for user")

// Registry tracks which users currently hold live socket connections.
// It is the single source of presence: match decay reads IsOnline from
// it and notification fan-out goes through Broadcast. Scoring code only
// ever sees the materialized flag, never the transport.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]map[string]struct{} // userID -> connection ids
	server *socketio.Server
}

// NewRegistry creates an empty registry. Attach wires the emitting
// server once it exists.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]map[string]struct{})}
}

// Attach sets the socket.io server used for broadcasting.
func (r *Registry) Attach(server *socketio.Server) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.server = server
}

// Bind registers a connection for userID, enforcing the per-user cap.
func (r *Registry) Bind(userID, connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	open := r.conns[userID]
	if len(open) >= maxConnectionsPerUser {
		return ErrTooManyConnections
	}
	if open == nil {
		open = make(map[string]struct{})
		r.conns[userID] = open
	}
	open[connID] = struct{}{}
	return nil
}

// Release drops a connection; the user goes offline when the last one closes.
func (r *Registry) Release(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	open := r.conns[userID]
	delete(open, connID)
	if len(open) == 0 {
		delete(r.conns, userID)
	}
}

// IsOnline reports whether userID holds at least one live connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// Broadcast emits an event to all of a user's connections. Best-effort:
// offline users and a detached registry are silently skipped.
func (r *Registry) Broadcast(userID, event string, payload interface{}) {
	r.mu.RLock()
	server := r.server
	online := len(r.conns[userID]) > 0
	r.mu.RUnlock()

	if server == nil || !online {
		return
	}
	server.BroadcastToRoom("/", userRoom(userID), event, payload)
}

func userRoom(userID string) string {
	return "user:" + userID
}
