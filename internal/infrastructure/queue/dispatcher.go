package queue

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/api/metrics"
	"github.com/clientasset/clientasset-api/internal/core/domain"
	"github.com/clientasset/clientasset-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher routes audit entries to a fixed set of workers sharded by
// client ID, so entries for one client are written in the order recorded.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.AuditRecorder = (*AuditDispatcher)(nil)

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an entry without blocking. When the shard is full the entry
// is dropped and counted.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.ClientID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("entity", entry.Entity).
			Int64("entity_id", entry.EntityID).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

func (d *AuditDispatcher) shardIndex(clientID int64) int {
	if clientID < 0 {
		clientID = -clientID
	}
	return int(clientID % int64(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, label, ch)
			return
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Dec()
			d.write(ctx, id, entry)
		}
	}
}

// drain flushes whatever is still buffered using a fresh context.
func (d *AuditDispatcher) drain(id int, label string, ch <-chan domain.AuditEntry) {
	for {
		select {
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Dec()
			d.write(context.Background(), id, entry)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	if err := d.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("entity", entry.Entity).
			Int64("entity_id", entry.EntityID).
			Int("worker_id", id).
			Msg("audit write failed")
		return
	}
	metrics.AuditEntriesTotal.WithLabelValues("written").Inc()
}
