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

// TradeWorker owns the trade-history WebSocket session, the peer feed
// behind the last-price ticker. Trades carry no sequence semantics, so
// there is no reconciliation here — decode, filter, forward.
type TradeWorker struct {
	url    string
	symbol string
	inbox  chan<- *event.TradeEvent

	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewTradeWorker factory
func NewTradeWorker(url, symbol string, inbox chan<- *event.TradeEvent) *TradeWorker {
	return &TradeWorker{
		url:    url,
		symbol: symbol,
		inbox:  inbox,
	}
}

func (w *TradeWorker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *TradeWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("BTSE trade connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			delay := infra.CalculateBackoff(retryCount)
			time.Sleep(delay)
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *TradeWorker) connect(ctx context.Context) error {
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
	slog.Info("BTSE trade feed connected", slog.String("symbol", w.symbol))
	return nil
}

func (w *TradeWorker) subscribe() error {
	req := opRequest{Op: "subscribe", Args: []string{tradeTopic + ":" + w.symbol}}
	b, err := json.Marshal(req)
	if err != nil {
		slog.Error("Failed to marshal subscribe request", slog.Any("error", err))
		return err
	}
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *TradeWorker) pingLoop(ctx context.Context) {
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

func (w *TradeWorker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *TradeWorker) readLoop(ctx context.Context) {
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

func (w *TradeWorker) handleMessage(msg []byte) {
	var env tradeEnvelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return
	}
	if env.Topic != tradeTopic || len(env.Data) == 0 {
		return
	}

	// The newest trade is element 0; that is the only one the last-price
	// ticker needs.
	last := env.Data[0]
	if last.Symbol != "" && last.Symbol != w.symbol {
		return
	}

	ev := event.AcquireTradeEvent()
	ev.Trade = domain.Trade{
		Symbol:    w.symbol,
		Price:     last.Price,
		Size:      last.Size,
		Side:      domain.TradeSide(last.Side),
		TradeID:   last.TradeID,
		Timestamp: last.Timestamp,
	}

	select {
	case w.inbox <- ev:
	default:
		event.ReleaseTradeEvent(ev) // Release if dropped
	}
}

func (w *TradeWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
		infra.GlobalMetrics.DecrementConnections()
	}
	w.connected = false
}

func (w *TradeWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
