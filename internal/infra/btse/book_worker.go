package btse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"depth_go/internal/domain"
	"depth_go/internal/event"
	"depth_go/internal/infra"

	"github.com/gorilla/websocket"
)

// BookWorker owns the order-book WebSocket session. It decodes pushes,
// drops anything off-topic, and forwards parsed messages to the
// reconciler's inbox. It also services the reconciler's resubscribe
// requests: on a fault signal it sends unsubscribe+subscribe frames so the
// exchange re-seeds the stream with a fresh snapshot. Retry timing for the
// connection itself lives here, never in the engine.
type BookWorker struct {
	url    string
	topic  string
	inbox  chan<- *event.BookUpdateEvent
	resync <-chan struct{}

	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewBookWorker factory
func NewBookWorker(url, symbol string, inbox chan<- *event.BookUpdateEvent, resync <-chan struct{}) *BookWorker {
	return &BookWorker{
		url:    url,
		topic:  bookTopicPrefix + symbol,
		inbox:  inbox,
		resync: resync,
	}
}

func (w *BookWorker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(2)
	go w.connectionLoop(ctx)
	go w.resubscribeLoop(ctx)
	return nil
}

func (w *BookWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("BTSE book connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0 // Infinite retry loop for monitoring
			}
			delay := infra.CalculateBackoff(retryCount)
			time.Sleep(delay)
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *BookWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return domain.NewNetworkError("dial", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	go w.pingLoop(ctx)
	slog.Info("BTSE book feed connected", slog.String("topic", w.topic))
	return nil
}

func (w *BookWorker) subscribe() error {
	return w.sendOp("subscribe")
}

func (w *BookWorker) unsubscribe() error {
	return w.sendOp("unsubscribe")
}

func (w *BookWorker) sendOp(op string) error {
	req := opRequest{Op: op, Args: []string{w.topic}}
	b, err := json.Marshal(req)
	if err != nil {
		slog.Error("Failed to marshal control frame", slog.Any("error", err))
		return err
	}
	return w.threadSafeWrite(websocket.TextMessage, b)
}

// resubscribeLoop drains fault signals from the reconciler. Each token
// becomes exactly one unsubscribe+subscribe pair; the exchange answers a
// fresh subscription with a snapshot, which resynchronizes the engine.
func (w *BookWorker) resubscribeLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.resync:
			slog.Info("Resubscribing to book topic", slog.String("topic", w.topic))
			if err := w.unsubscribe(); err != nil {
				// The read loop will reconnect and resubscribe anyway.
				slog.Warn("Unsubscribe failed", slog.Any("error", err))
				continue
			}
			if err := w.subscribe(); err != nil {
				slog.Warn("Subscribe failed", slog.Any("error", err))
			}
		}
	}
}

func (w *BookWorker) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.threadSafeWrite(websocket.TextMessage, []byte("ping"))
		}
	}
}

func (w *BookWorker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *BookWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		if string(msg) == "pong" {
			continue
		}
		w.handleMessage(msg)
	}
}

func (w *BookWorker) handleMessage(msg []byte) {
	var env bookEnvelope
	if err := json.Unmarshal(msg, &env); err != nil {
		// Not a book push (ack frames etc.) — drop at the boundary.
		return
	}
	if env.Topic != w.topic {
		return
	}

	update, ok := parseBookData(env.Data)
	if !ok {
		return
	}

	// Copy levels into the pooled event's slices to reuse their capacity.
	ev := event.AcquireBookUpdateEvent()
	bids := append(ev.Update.Bids[:0], update.Bids...)
	asks := append(ev.Update.Asks[:0], update.Asks...)
	update.Bids, update.Asks = bids, asks
	ev.Update = update

	select {
	case w.inbox <- ev:
	default:
		event.ReleaseBookUpdateEvent(ev) // Release if dropped
	}
}

// parseBookData maps a decoded push body onto the domain message. Unknown
// types report !ok and are dropped silently.
func parseBookData(d bookData) (domain.BookUpdate, bool) {
	var t domain.UpdateType
	switch d.Type {
	case string(domain.UpdateSnapshot):
		t = domain.UpdateSnapshot
	case string(domain.UpdateDelta):
		t = domain.UpdateDelta
	default:
		return domain.BookUpdate{}, false
	}

	return domain.BookUpdate{
		Type:       t,
		Bids:       d.Bids,
		Asks:       d.Asks,
		SeqNum:     d.SeqNum,
		PrevSeqNum: d.PrevSeqNum,
		Timestamp:  d.Timestamp,
	}, true
}

func (w *BookWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
		infra.GlobalMetrics.DecrementConnections()
	}
	w.connected = false
}

func (w *BookWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
