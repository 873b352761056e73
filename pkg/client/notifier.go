package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// notificationTTL is how long a non-persistent notification stays active.
const notificationTTL = 5 * time.Second

// Notification is an ephemeral UI-facing record. Non-persistent ones expire
// after notificationTTL; persistent ones stay until dismissed.
type Notification struct {
	ID         string
	Type       string // info | warning | error
	Title      string
	Message    string
	Timestamp  time.Time
	Persistent bool
}

// Notifier is an in-memory notification center. Duplicates (same title and
// message among currently active notifications) are suppressed.
type Notifier struct {
	mu    sync.Mutex
	items []Notification
	ttl   time.Duration
	now   func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{ttl: notificationTTL, now: time.Now}
}

// Push adds a notification unless an active one with the same title and
// message exists. Reports whether the notification was added.
func (n *Notifier) Push(typ, title, message string, persistent bool) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	n.pruneLocked(now)

	for _, item := range n.items {
		if item.Title == title && item.Message == message {
			return false
		}
	}
	n.items = append(n.items, Notification{
		ID:         uuid.NewString(),
		Type:       typ,
		Title:      title,
		Message:    message,
		Timestamp:  now,
		Persistent: persistent,
	})
	return true
}

// Active returns the currently visible notifications, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pruneLocked(n.now())
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Dismiss removes a notification by id, persistent or not.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.items[:0]
	for _, item := range n.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	n.items = kept
}

// pruneLocked drops expired non-persistent notifications. Callers hold mu.
func (n *Notifier) pruneLocked(now time.Time) {
	kept := n.items[:0]
	for _, item := range n.items {
		if item.Persistent || now.Sub(item.Timestamp) < n.ttl {
			kept = append(kept, item)
		}
	}
	n.items = kept
}
