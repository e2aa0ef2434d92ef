package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/core/domain"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// ActivityStore is the persistence sink for activity entries.
type ActivityStore interface {
	InsertActivity(ctx context.Context, entry *domain.ActivityEntry) error
}

// Recorder persists member activity and admin audit entries off the request
// path. Entries are fire-and-forget: a full queue drops rather than blocks.
type Recorder struct {
	ch      chan *domain.ActivityEntry
	store   ActivityStore
	workers int
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers draining goroutines.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, store ActivityStore, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Recorder{
		ch:      make(chan *domain.ActivityEntry, channelBuffer),
		store:   store,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i := 0; i < r.workers; i++ {
		go r.runWorker(ctx)
	}
}

// Record enqueues an entry without blocking. Overflow is counted and dropped;
// activity is advisory, never worth failing a request over.
func (r *Recorder) Record(memberID, activityType string, data map[string]any) {
	entry := &domain.ActivityEntry{
		MemberID:     memberID,
		ActivityType: activityType,
		Data:         data,
		CreatedAt:    time.Now().UTC(),
	}
	select {
	case r.ch <- entry:
		metrics.ActivityQueueDepth.Set(float64(len(r.ch)))
	default:
		metrics.ActivityDroppedTotal.Inc()
		r.log.Warn().Str("activity_type", activityType).Msg("activity queue full, entry dropped")
	}
}

func (r *Recorder) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-r.ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.Set(float64(len(r.ch)))
			if err := r.store.InsertActivity(ctx, entry); err != nil {
				r.log.Error().Err(err).
					Str("activity_type", entry.ActivityType).
					Msg("failed to persist activity entry")
			}
		}
	}
}
