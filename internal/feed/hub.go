// Package feed publishes engine events as a read-only JSON stream over
// websockets, for dashboards and other out-of-process observers.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/neon-snake/internal/snake"
)

// HubConfig tunes the hub.
type HubConfig struct {
	// QueueSize is the number of messages buffered per subscriber before
	// messages to that subscriber are dropped.
	QueueSize int
	// WriteTimeout bounds a single websocket write.
	WriteTimeout time.Duration
	Logger       *log.Logger
}

// DefaultHubConfig returns the default hub settings.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		QueueSize:    64,
		WriteTimeout: 5 * time.Second,
	}
}

// Hub fans messages out to every connected subscriber. Publishing never
// blocks: a slow subscriber loses messages instead of stalling the game.
type Hub struct {
	cfg      HubConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	seq      atomic.Uint64

	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// NewHub creates an empty hub.
func NewHub(cfg HubConfig) *Hub {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = DefaultHubConfig().QueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultHubConfig().WriteTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Listener returns an engine listener that publishes events tagged with
// sessionID.
func (h *Hub) Listener(sessionID string) snake.Listener {
	return func(ev snake.Event) {
		msg, ok := messageFor(sessionID, ev, time.Now())
		if !ok {
			return
		}
		h.Publish(msg)
	}
}

// Publish assigns the next sequence number to msg and queues it for every
// subscriber.
func (h *Hub) Publish(msg Message) {
	msg.Seq = h.seq.Add(1)
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal feed message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			if sub.dropped.Add(1) == 1 {
				h.logger.Warn("feed subscriber is falling behind", "remote", sub.conn.RemoteAddr().String())
			}
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// ServeHTTP upgrades the request and streams messages until the client goes
// away or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, h.cfg.QueueSize),
		done: make(chan struct{}),
	}
	if !h.register(sub) {
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}
	h.logger.Debug("feed subscriber connected", "remote", r.RemoteAddr)

	hello, _ := json.Marshal(Message{Ver: ProtocolVersion, Type: TypeHello, SentAt: time.Now().UnixMilli()})
	sub.send <- hello

	// The feed is read-only; reading only detects the close.
	go func() {
		defer sub.close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.writeLoop(sub)
	h.unregister(sub)
	conn.Close()
	h.logger.Debug("feed subscriber disconnected", "remote", r.RemoteAddr, "dropped", sub.dropped.Load())
}

func (h *Hub) writeLoop(sub *subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case data := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

func (h *Hub) register(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[sub] = struct{}{}
	return true
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.subs {
		deadline := time.Now().Add(time.Second)
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		sub.conn.WriteControl(websocket.CloseMessage, message, deadline)
		sub.close()
	}
}

// Handler returns the HTTP routes: /feed for the websocket and /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/feed", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})
	return mux
}

// ListenAndServe serves the feed on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("starting event feed", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
