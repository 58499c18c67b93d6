package main

import (
	"log"
	"sync"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub tracks connected clients and owns the shared services they use
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager

	// connection limiting, touched from HTTP handlers
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int

	db        *DB
	auth      *Auth
	analytics *Analytics
}

// NewHub creates a new Hub. db may be nil, which disables accounts,
// run history and analytics.
func NewHub(cfg SimConfig, db *DB) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		ipConns:    make(map[string]int),
		db:         db,
	}
	if db != nil {
		h.auth = NewAuth(db)
		h.analytics = NewAnalytics(db)
	}
	h.sessions = NewSessionManager(cfg, db, h.analytics)
	return h
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	return h.ipConns[ip] < maxConnsPerIP
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.analytics.SetConcurrentPeers(n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.analytics.SetConcurrentPeers(n)
			h.detach(client)
		}
	}
}

// detach drops a departing client from its session. An owner takes the
// session down with it; a controller only unpairs.
func (h *Hub) detach(c *Client) {
	if c.sessionID == "" {
		return
	}
	if c.isController {
		if sess, err := h.sessions.GetSession(c.sessionID); err == nil {
			sess.DetachController(c)
		}
		return
	}
	h.sessions.RemoveSession(c.sessionID)
}

// Close stops background work that outlives connections
func (h *Hub) Close() {
	h.analytics.Stop()
}

// ServerStats is the /api/stats payload
type ServerStats struct {
	Clients  int            `json:"clients"`
	Conns    int            `json:"conns"`
	Sessions int            `json:"sessions"`
	Peers    int            `json:"peers"`
	Events   map[string]int `json:"events,omitempty"`
	Runs     *RunAnalytics  `json:"runs,omitempty"`
}

// Stats reports live counts and, with a database, analytics over the last days
func (h *Hub) Stats(days int) ServerStats {
	st := ServerStats{
		Clients:  h.ClientCount(),
		Conns:    h.TotalConns(),
		Sessions: h.sessions.Count(),
	}
	st.Peers, _ = h.analytics.GetLiveMetrics()
	if h.analytics == nil {
		return st
	}
	if counts, err := h.analytics.EventCounts(days); err == nil {
		st.Events = counts
	} else {
		log.Printf("stats: event counts: %v", err)
	}
	if runs, err := h.analytics.RunStats(days); err == nil {
		st.Runs = &runs
	} else {
		log.Printf("stats: run stats: %v", err)
	}
	return st
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
