package dispatcher

import (
	"log/slog"
	"sync"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

// Registry keeps at most one live stream channel per user on this instance.
// A browser reconnect registers a fresh channel for the same user id; the
// displaced channel is closed, not left hanging.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]domain.StreamChannel
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]domain.StreamChannel),
	}
}

func (r *Registry) RegisterConnection(userID string, ch domain.StreamChannel) {
	r.mu.Lock()
	old := r.channels[userID]
	r.channels[userID] = ch
	r.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			slog.Debug("closing displaced stream channel", "user_id", userID, "error", err.Error())
		}
	}
}

// UnregisterConnection removes ch only while it is still the registered
// channel for userID. A handler whose channel was displaced by a reconnect
// calls this with its own stale channel and leaves the replacement alone.
func (r *Registry) UnregisterConnection(userID string, ch domain.StreamChannel) {
	r.mu.Lock()
	if r.channels[userID] == ch {
		delete(r.channels, userID)
	}
	r.mu.Unlock()

	// connection may already be dead, close errors are expected
	_ = ch.Close()
}

// SendLocal writes to the user's channel if one is registered here. A missing
// recipient is a no-op: the user may be connected to another instance or not
// at all. A write failure unregisters the broken channel.
func (r *Registry) SendLocal(userID string, data []byte) bool {
	r.mu.RLock()
	ch := r.channels[userID]
	r.mu.RUnlock()

	if ch == nil {
		return false
	}

	if err := ch.Send(data); err != nil {
		slog.Warn("stream write failed, dropping connection", "user_id", userID, "error", err.Error())
		r.UnregisterConnection(userID, ch)
		return false
	}
	return true
}

// ConnectionCount reports open channels on this instance.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
