package repository

import (
	"context"
	"sync"
	"time"

	"tour-booking/internal/data/entity"

	"go.uber.org/zap"
)

type DraftRepository interface {
	// Get returns a snapshot of the session's draft, or an empty draft.
	Get(ctx context.Context, sessionID string) entity.BookingDraft
	// Update runs fn on the session's draft under the store lock, creating
	// the draft if needed. The returned snapshot reflects the draft after fn,
	// whether or not fn failed.
	Update(ctx context.Context, sessionID string, fn func(d *entity.BookingDraft) error) (entity.BookingDraft, error)
	Delete(ctx context.Context, sessionID string)
	Count() int
	// Active counts drafts with a tour selected, i.e. an open dialog.
	Active() int
	// Sweep drops drafts idle longer than the TTL and returns how many went.
	Sweep() int
	// Run sweeps every interval until ctx is done.
	Run(ctx context.Context, interval time.Duration)
}

type draftEntry struct {
	draft    *entity.BookingDraft
	lastSeen time.Time
}

type draftRepository struct {
	mu     sync.Mutex
	drafts map[string]*draftEntry
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewDraftRepository(ttl time.Duration, now func() time.Time, log *zap.Logger) DraftRepository {
	return &draftRepository{
		drafts: make(map[string]*draftEntry),
		ttl:    ttl,
		now:    now,
		log:    log.With(zap.String("repository", "draft")),
	}
}

func (r *draftRepository) Get(ctx context.Context, sessionID string) entity.BookingDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.drafts[sessionID]
	if !ok {
		return *entity.NewBookingDraft()
	}
	e.lastSeen = r.now()
	return e.draft.Snapshot()
}

func (r *draftRepository) Update(ctx context.Context, sessionID string, fn func(d *entity.BookingDraft) error) (entity.BookingDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.drafts[sessionID]
	if !ok {
		e = &draftEntry{draft: entity.NewBookingDraft()}
		r.drafts[sessionID] = e
	}
	e.lastSeen = r.now()

	err := fn(e.draft)
	return e.draft.Snapshot(), err
}

func (r *draftRepository) Delete(ctx context.Context, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, sessionID)
}

func (r *draftRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

func (r *draftRepository) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.drafts {
		if e.draft.Open() {
			n++
		}
	}
	return n
}

func (r *draftRepository) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for sid, e := range r.drafts {
		if e.lastSeen.Before(cutoff) {
			delete(r.drafts, sid)
			removed++
		}
	}
	return removed
}

func (r *draftRepository) Run(ctx context.Context, interval time.Duration) {
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
			if n := r.Sweep(); n > 0 {
				r.log.Debug("Evicted idle drafts", zap.Int("count", n))
			}
		}
	}
}
