package notify

import (
	"context"
	"sync"
	"time"

	"tour-booking/pkg/utils"
)

const defaultFlashLimit = 10

type flashQueue struct {
	items    []Notification
	lastSeen time.Time
}

// FlashNotifier queues toasts per visitor session until the next render
// drains them. Notifications without a session in ctx are dropped.
// Queues left undrained for longer than ttl are evicted by Sweep.
type FlashNotifier struct {
	mu     sync.Mutex
	queues map[string]*flashQueue
	limit  int
	ttl    time.Duration
	now    func() time.Time
}

func NewFlashNotifier(limit int, ttl time.Duration, now func() time.Time) *FlashNotifier {
	if limit <= 0 {
		limit = defaultFlashLimit
	}
	if now == nil {
		now = time.Now
	}
	return &FlashNotifier{
		queues: make(map[string]*flashQueue),
		limit:  limit,
		ttl:    ttl,
		now:    now,
	}
}

func (f *FlashNotifier) Notify(ctx context.Context, n Notification) {
	sid, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.queues[sid]
	if !ok {
		q = &flashQueue{}
		f.queues[sid] = q
	}
	q.lastSeen = f.now()
	q.items = append(q.items, n)
	if len(q.items) > f.limit {
		q.items = q.items[len(q.items)-f.limit:]
	}
}

// Drain returns the session's pending toasts, oldest first, and clears them.
func (f *FlashNotifier) Drain(sessionID string) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.queues[sessionID]
	if !ok {
		return nil
	}
	delete(f.queues, sessionID)
	return q.items
}

func (f *FlashNotifier) Pending(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if q, ok := f.queues[sessionID]; ok {
		return len(q.items)
	}
	return 0
}

// Sessions is the number of sessions holding undrained toasts.
func (f *FlashNotifier) Sessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queues)
}

// Sweep drops queues untouched for longer than the TTL and returns how many went.
func (f *FlashNotifier) Sweep() int {
	if f.ttl <= 0 {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-f.ttl)
	removed := 0
	for sid, q := range f.queues {
		if q.lastSeen.Before(cutoff) {
			delete(f.queues, sid)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (f *FlashNotifier) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Sweep()
		}
	}
}
