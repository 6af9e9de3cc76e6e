package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"depth_go/internal/domain"
	"depth_go/internal/event"
	"depth_go/internal/infra"
)

// State of the reconciliation state machine. The faulted state is
// transient: a fault emits one resubscribe request and immediately lands
// back in StateAwaitingSnapshot.
type State int8

const (
	StateAwaitingSnapshot State = iota
	StateSynced
)

func (s State) String() string {
	if s == StateSynced {
		return "synced"
	}
	return "awaiting_snapshot"
}

// Reconciler is the core single-threaded book processor. It owns one side
// map per book side plus the sequence guard, consumes parsed
// snapshot/delta messages from its inbox, and keeps the local replica
// consistent. A gapped or crossed replica is unrecoverable locally — there
// is no way to know which updates were missed — so faults discard the
// replica and request a fresh snapshot via resubscription.
type Reconciler struct {
	inbox chan *event.BookUpdateEvent

	bids  *side
	asks  *side
	guard sequenceGuard
	state State

	// Boundary: the transport worker drains this to issue
	// unsubscribe/subscribe frames. Fire-and-forget, at most one pending.
	resyncCh chan struct{}

	mu sync.RWMutex // Guards book state for external snapshot reads
}

// NewReconciler creates a reconciler with the given inbox capacity.
func NewReconciler(inboxSize int) *Reconciler {
	return &Reconciler{
		inbox:    make(chan *event.BookUpdateEvent, inboxSize),
		bids:     newSide(),
		asks:     newSide(),
		state:    StateAwaitingSnapshot,
		resyncCh: make(chan struct{}, 1),
	}
}

// Inbox returns the message channel. The transport worker sends here.
func (r *Reconciler) Inbox() chan<- *event.BookUpdateEvent {
	return r.inbox
}

// ResyncRequests exposes the resubscribe signal. Each detected fault puts
// at most one token here; a pending token already covers any fault that
// fires before the worker drains it.
func (r *Reconciler) ResyncRequests() <-chan struct{} {
	return r.resyncCh
}

// Run starts the main apply loop. This MUST be run in a single goroutine —
// it is the only writer to the book state.
func (r *Reconciler) Run(ctx context.Context) {
	slog.Info("Reconciler started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reconciler stopping...")
			return
		case ev := <-r.inbox:
			r.processUpdate(ev)
			event.ReleaseBookUpdateEvent(ev)
		}
	}
}

func (r *Reconciler) processUpdate(ev *event.BookUpdateEvent) {
	err := r.Apply(ev.Update)
	if err == nil {
		infra.GlobalMetrics.RecordMessage()
		return
	}

	switch {
	case errors.Is(err, domain.ErrSequenceGap):
		slog.Warn("Sequence gap detected, requesting resubscribe",
			slog.Uint64("prev_seq", ev.Update.PrevSeqNum),
			slog.Uint64("seq", ev.Update.SeqNum))
		infra.GlobalMetrics.RecordSequenceGap()
	case errors.Is(err, domain.ErrCrossedBook):
		slog.Warn("Crossed book detected, requesting resubscribe",
			slog.Uint64("seq", ev.Update.SeqNum))
		infra.GlobalMetrics.RecordCrossedBook()
	default:
		slog.Error("Book update failed", slog.Any("error", err))
	}
}

// Apply runs one message through the state machine. Validation is strict:
// every individual delta is sequence-checked before application and
// cross-checked immediately after, never batched. On fault the replica is
// discarded, one resubscribe request is emitted, and the returned error
// names the fault.
func (r *Reconciler) Apply(u domain.BookUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch u.Type {
	case domain.UpdateSnapshot:
		// A snapshot resynchronizes from any state.
		r.bids.applySnapshot(u.Bids)
		r.asks.applySnapshot(u.Asks)
		r.guard.onSnapshot(u.SeqNum)
		r.state = StateSynced
		return nil

	case domain.UpdateDelta:
		if r.state != StateSynced {
			// Deltas before a snapshot carry no usable baseline.
			return nil
		}
		if !r.guard.onDelta(u.PrevSeqNum, u.SeqNum) {
			r.fault()
			return domain.ErrSequenceGap
		}

		r.bids.applyDelta(u.Bids)
		r.asks.applyDelta(u.Asks)

		if r.crossed() {
			r.fault()
			return domain.ErrCrossedBook
		}
		return nil

	default:
		// Unknown message types are dropped at the ingestion boundary;
		// reaching here is a worker bug worth surfacing.
		slog.Warn("Unknown update type", slog.String("type", string(u.Type)))
		return nil
	}
}

// crossed reports best bid >= best ask while both sides are non-empty.
// Callers hold the write lock.
func (r *Reconciler) crossed() bool {
	bestBid, ok := r.bids.best(true)
	if !ok {
		return false
	}
	bestAsk, ok := r.asks.best(false)
	if !ok {
		return false
	}
	return bestBid >= bestAsk
}

// fault discards the replica and emits the resubscribe signal. The caller
// holds the write lock. The stale (possibly crossing) book must not
// survive: the display goes empty until the next snapshot lands.
func (r *Reconciler) fault() {
	r.bids.clear()
	r.asks.clear()
	r.guard.reset()
	r.state = StateAwaitingSnapshot

	select {
	case r.resyncCh <- struct{}{}:
		infra.GlobalMetrics.RecordResubscribe()
	default:
		// A resubscribe is already pending; it covers this fault too.
	}
}

// State returns the current machine state (external read).
func (r *Reconciler) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Snapshot returns a consistent copy of both sides for projection. The
// scheduler calls this every refresh tick; copying under RLock guarantees
// a non-torn view against the apply loop.
func (r *Reconciler) Snapshot() domain.BookSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.BookSnapshot{
		Bids:   r.bids.copyLevels(),
		Asks:   r.asks.copyLevels(),
		SeqNum: r.guard.cursor,
	}
}
