package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/vovakirdan/pose-catcher/internal/pose"
	"github.com/vovakirdan/pose-catcher/internal/registry"
)

// DefaultAddr is where the WebSocket feed listens when no address is given.
const DefaultAddr = "127.0.0.1:8765"

const (
	readLimit    = 64 << 10
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

func init() {
	registry.Register("ws", "WebSocket endpoint at /pose (JSON text or msgpack binary frames)",
		func(opts registry.Options) (registry.Feed, error) {
			return NewWebSocket(opts.Addr, opts.Logger), nil
		})
}

// WebSocket accepts classifier connections on /pose. Text messages carry a
// JSON frame, binary messages the same frame encoded with msgpack. Several
// clients may connect; their frames are delivered in arrival order.
type WebSocket struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewWebSocket creates a feed that will listen on addr.
func NewWebSocket(addr string, logger *log.Logger) *WebSocket {
	if addr == "" {
		addr = DefaultAddr
	}
	return &WebSocket{
		addr:   addr,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Classifier pages are served from anywhere, often file://
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Run listens until ctx is cancelled, then closes every connection.
func (w *WebSocket) Run(ctx context.Context, deliver registry.Deliver) error {
	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return fmt.Errorf("feed: listen %s: %w", w.addr, err)
	}
	return w.Serve(ctx, ln, deliver)
}

// Serve is Run on an existing listener.
func (w *WebSocket) Serve(ctx context.Context, ln net.Listener, deliver registry.Deliver) error {
	srv := &http.Server{
		Handler:           w.Handler(deliver),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	w.logger.Info("pose feed listening", "addr", ln.Addr().String(), "path", "/pose")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("feed: serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	w.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("feed: shutdown: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler serving /pose.
func (w *WebSocket) Handler(deliver registry.Deliver) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pose", func(rw http.ResponseWriter, r *http.Request) {
		conn, err := w.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			w.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		w.serveConn(conn, deliver)
	})
	return mux
}

func (w *WebSocket) serveConn(conn *websocket.Conn, deliver registry.Deliver) {
	if !w.track(conn) {
		conn.Close()
		return
	}
	defer w.untrack(conn)

	remote := conn.RemoteAddr().String()
	w.logger.Info("classifier connected", "remote", remote)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go w.pingLoop(conn, done)

	frames, dropped := 0, 0
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.logger.Warn("classifier read failed", "remote", remote, "error", err)
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		samples, err := decodeMessage(msgType, data)
		if err != nil {
			dropped++
			w.logger.Debug("dropping frame", "remote", remote, "error", err)
			continue
		}
		frames++
		deliver(samples)
	}

	w.logger.Info("classifier disconnected", "remote", remote, "frames", frames, "dropped", dropped)
}

func (w *WebSocket) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (w *WebSocket) track(conn *websocket.Conn) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.conns[conn] = struct{}{}
	return true
}

func (w *WebSocket) untrack(conn *websocket.Conn) {
	w.mu.Lock()
	delete(w.conns, conn)
	w.mu.Unlock()
	conn.Close()
}

// closeAll closes hijacked connections, which http.Server.Shutdown ignores.
func (w *WebSocket) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for conn := range w.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

func decodeMessage(msgType int, data []byte) ([]pose.Sample, error) {
	switch msgType {
	case websocket.TextMessage:
		return DecodeJSON(data)
	case websocket.BinaryMessage:
		return DecodeMsgpack(data)
	default:
		return nil, fmt.Errorf("feed: unsupported message type %d", msgType)
	}
}

// DecodeMsgpack parses a msgpack-encoded frame using the JSON field names.
func DecodeMsgpack(data []byte) ([]pose.Sample, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")

	if len(data) > 0 && data[0] == msgpcode.Nil {
		return nil, ErrNoSamples
	}
	var samples []pose.Sample
	if err := dec.Decode(&samples); err != nil {
		return nil, fmt.Errorf("feed: decode msgpack frame: %w", err)
	}
	if samples == nil {
		samples = []pose.Sample{}
	}
	return samples, nil
}

// EncodeMsgpack is the inverse of DecodeMsgpack, for clients and tests.
func EncodeMsgpack(samples []pose.Sample) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(samples); err != nil {
		return nil, fmt.Errorf("feed: encode msgpack frame: %w", err)
	}
	return buf.Bytes(), nil
}
