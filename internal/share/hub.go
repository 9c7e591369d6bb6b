// Package share mirrors the board's current formation to read-only viewers
// over a websocket.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/Garsondee/tactics-board/internal/formation"
)

// Stats is served on /health.
type Stats struct {
	Viewers          int    `json:"viewers"`
	TotalConnections uint64 `json:"totalConnections"`
	Updates          uint64 `json:"updates"`
}

// Hub fans formation snapshots out to every connected viewer. Publish is
// called from the game goroutine; handlers run on net/http goroutines.
type Hub struct {
	mu     sync.Mutex
	conns  map[*Conn]struct{}
	latest []byte

	nextID           atomic.Uint64
	totalConnections atomic.Uint64
	updates          atomic.Uint64

	originPatterns []string
	server         *http.Server
}

// NewHub returns an empty hub. originPatterns is passed to websocket.Accept;
// nil allows same-origin only.
func NewHub(originPatterns []string) *Hub {
	return &Hub{
		conns:          make(map[*Conn]struct{}),
		originPatterns: originPatterns,
	}
}

// Attach publishes the store's formation now and after every mutation. The
// returned func stops mirroring.
func (h *Hub) Attach(store *formation.Store) (detach func()) {
	publish := func() {
		if err := h.Publish(store.State().Current); err != nil {
			log.Printf("share: %v", err)
		}
	}
	publish()
	return store.Subscribe(publish)
}

// Publish encodes f and queues it for every viewer.
func (h *Hub) Publish(f formation.Formation) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode formation: %w", err)
	}
	h.updates.Add(1)

	h.mu.Lock()
	h.latest = data
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.send(data)
	}
	return nil
}

// Latest returns the last published frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	n := len(h.conns)
	h.mu.Unlock()
	return Stats{
		Viewers:          n,
		TotalConnections: h.totalConnections.Load(),
		Updates:          h.updates.Load(),
	}
}

// Handler routes /ws, /formation and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	mux.HandleFunc("/formation", h.handleFormation)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h.Stats())
	})
	return mux
}

func (h *Hub) handleFormation(w http.ResponseWriter, r *http.Request) {
	data := h.Latest()
	if data == nil {
		http.Error(w, "no formation published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// HandleWS upgrades a viewer and blocks until it disconnects. Viewers are
// read-only: anything they send closes the connection.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		log.Printf("share: accept error: %v", err)
		return
	}

	h.totalConnections.Add(1)
	conn := newConn(ws, fmt.Sprintf("viewer-%d", h.nextID.Add(1)))

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	latest := h.latest
	h.mu.Unlock()
	log.Printf("share: %s connected from %s", conn.ID, r.RemoteAddr)

	if latest != nil {
		conn.send(latest)
	}

	// Background context so the viewer outlives the upgrade request.
	go conn.WriteLoop(context.Background())
	readCtx := ws.CloseRead(context.Background())

	select {
	case <-readCtx.Done():
		conn.Close()
	case <-conn.Done():
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	log.Printf("share: %s disconnected", conn.ID)
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr uses port 0.
func (h *Hub) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("share listen %s: %w", addr, err)
	}
	h.server = &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("share: server error: %v", err)
		}
	}()
	log.Printf("share: mirroring on http://%s", ln.Addr())
	return ln.Addr().String(), nil
}

// Shutdown closes every viewer and stops the server started by Start. The
// close handshakes run without holding the hub lock, so Publish keeps
// returning promptly while viewers drain.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(1)
		go func(c *Conn) {
			defer wg.Done()
			c.Close()
		}(c)
	}

	var err error
	if h.server != nil {
		err = h.server.Shutdown(ctx)
	}

	closed := make(chan struct{})
	go func() {
		wg.Wait()
		close(closed)
	}()
	select {
	case <-closed:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}
