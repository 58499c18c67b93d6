package main

import (
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

const maxSessions = 100

// ErrSessionNotFound is returned for unknown or closed session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one pilot's run: a simulation, the loop driver advancing it
// and the connections watching it. mu serializes frame callbacks with
// input and control messages, so the simulation itself needs no locks.
type Session struct {
	ID string

	mu         sync.Mutex
	game       *Game
	driver     *LoopDriver
	renderers  *RendererSet
	codec      string
	snap       Snapshot
	owner      *Client
	controller *Client
	authID     int64
	authName   string
	unsub      []func()

	db        *DB
	analytics *Analytics

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSession wires a fresh simulation to owner. owner may be nil, in which
// case snapshots and events are dropped.
func NewSession(id string, cfg SimConfig, seed uint64, owner *Client, db *DB, analytics *Analytics) *Session {
	s := &Session{
		ID:        id,
		game:      NewGame(cfg, seed),
		codec:     RendererMsgpack,
		owner:     owner,
		db:        db,
		analytics: analytics,
		stop:      make(chan struct{}),
	}
	s.driver = NewLoopDriver(s.game, cfg.Step(), cfg.MaxFrameDelta(), cfg.RenderEvery, s.render)

	s.renderers = NewRendererSet(NopRenderer())
	if owner != nil {
		s.renderers.Register(RendererJSON, NewJSONRenderer(owner))
		s.renderers.Register(RendererMsgpack, NewMsgpackRenderer(owner))
	}

	bus := s.game.Bus()
	for _, topic := range AllTopics {
		if topic == TopicProjectileFired {
			continue // too chatty for the wire
		}
		topic := topic
		s.unsub = append(s.unsub, bus.Subscribe(topic, func(payload any) {
			s.forward(topic, payload)
		}))
	}
	s.unsub = append(s.unsub, bus.Subscribe(TopicGameOver, s.onGameOver))
	if analytics != nil {
		s.unsub = append(s.unsub, analytics.Observe(bus, id, s.authPlayerID))
	}
	return s
}

// Run drives the loop from a wall-clock ticker until Close
func (s *Session) Run() {
	ticker := time.NewTicker(s.game.Config().Step())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.driver.Frame(now.Sub(last))
			s.mu.Unlock()
			last = now
		}
	}
}

// Close stops the ticker goroutine and detaches all bus handlers
func (s *Session) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.mu.Lock()
		s.driver.Stop()
		for _, u := range s.unsub {
			u()
		}
		s.unsub = nil
		s.mu.Unlock()
	})
}

// render is the loop driver's render pass
func (s *Session) render() {
	s.game.Capture(&s.snap, s.driver.Alpha())
	s.renderers.Resolve(s.codec).Render(&s.snap)
}

func (s *Session) forward(topic Topic, payload any) {
	if s.owner == nil {
		return
	}
	s.owner.SendJSON(Envelope{T: MsgEvent, Data: EventMsg{Topic: topic, Payload: payload}})
}

// onGameOver runs inside Update with mu held; persistence happens off the tick
func (s *Session) onGameOver(payload any) {
	over, ok := payload.(GameOver)
	if !ok {
		return
	}
	run := RunRow{
		PlayerID:  s.authID,
		SessionID: s.ID,
		Score:     over.Score,
		Level:     over.Level,
		Kills:     over.Kills,
		Duration:  over.Duration,
	}
	go s.finishRun(run, s.owner)
}

func (s *Session) finishRun(run RunRow, owner *Client) {
	msg := OverMsg{
		Score:    run.Score,
		Level:    run.Level,
		Duration: run.Duration,
		Best:     run.Score,
	}
	if s.db != nil {
		if _, err := s.db.RecordRun(run); err != nil {
			log.Printf("session %s: record run: %v", s.ID, err)
		}
		if run.PlayerID > 0 {
			if best, err := s.db.BestScore(run.PlayerID); err == nil {
				msg.Best = best
			}
			msg.Achievements = CheckAchievements(s.db, run.PlayerID, run)
			for _, a := range msg.Achievements {
				s.analytics.Track(EvtAchievement, run.PlayerID, s.ID, a.ID)
			}
		}
	}
	if owner != nil {
		owner.SendJSON(Envelope{T: MsgOver, Data: msg})
	}
}

// Start begins a run, optionally switching the snapshot codec first
func (s *Session) Start(codec string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if codec != "" {
		s.codec = codec
	}
	if !s.game.Start() {
		return false
	}
	s.driver.Start()
	return true
}

// Restart abandons the current run and starts a new one
func (s *Session) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.Restart() {
		return false
	}
	s.driver.Start()
	return true
}

// Pause freezes the run
func (s *Session) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.Pause() {
		return false
	}
	s.driver.Stop()
	return true
}

// Resume continues a paused run with a fresh accumulator
func (s *Session) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.Resume() {
		return false
	}
	s.driver.Start()
	return true
}

// SetInput applies held controls from the owner or the paired controller
func (s *Session) SetInput(in PlayerInput) {
	s.mu.Lock()
	s.game.SetInput(in)
	s.mu.Unlock()
}

// SetCodec switches the renderer used by later render passes
func (s *Session) SetCodec(id string) {
	s.mu.Lock()
	s.codec = id
	s.mu.Unlock()
}

// SetAuth links later runs to an account
func (s *Session) SetAuth(playerID int64, username string) {
	s.mu.Lock()
	s.authID = playerID
	s.authName = username
	s.mu.Unlock()
}

// authPlayerID is read by bus observers, which run with mu held
func (s *Session) authPlayerID() int64 {
	return s.authID
}

// AttachController pairs a phone controller, replacing any previous one
func (s *Session) AttachController(c *Client) {
	s.mu.Lock()
	s.controller = c
	owner := s.owner
	s.mu.Unlock()
	if owner != nil {
		owner.SendJSON(Envelope{T: MsgCtrlOn})
	}
}

// DetachController unpairs c if it is the current controller
func (s *Session) DetachController(c *Client) {
	s.mu.Lock()
	if s.controller != c {
		s.mu.Unlock()
		return
	}
	s.controller = nil
	s.game.SetInput(PlayerInput{})
	owner := s.owner
	s.mu.Unlock()
	if owner != nil {
		owner.SendJSON(Envelope{T: MsgCtrlOff})
	}
}

// Phase returns the simulation phase
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Phase()
}

// Welcome describes the playfield to a newly attached client
func (s *Session) Welcome() WelcomeMsg {
	cfg := s.game.Config()
	return WelcomeMsg{
		SessionID: s.ID,
		Width:     cfg.Width,
		Height:    cfg.Height,
		TickRate:  cfg.TickRate,
		Lives:     cfg.Lives,
	}
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	cfg       SimConfig
	db        *DB
	analytics *Analytics
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(cfg SimConfig, db *DB, analytics *Analytics) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		db:        db,
		analytics: analytics,
	}
}

// CreateSession creates a session owned by c and starts its ticker.
// Returns nil if the limit is reached.
func (sm *SessionManager) CreateSession(owner *Client) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	sess := NewSession(GenerateUUID(), sm.cfg, rand.Uint64(), owner, sm.db, sm.analytics)
	sm.sessions[sess.ID] = sess
	go sess.Run()
	sm.analytics.SetActiveSessions(len(sm.sessions))
	sm.analytics.Track(EvtSessionStart, 0, sess.ID, "")
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sess, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// RemoveSession closes and forgets a session
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	delete(sm.sessions, id)
	n := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return
	}
	sess.Close()
	sm.analytics.SetActiveSessions(n)
	sm.analytics.Track(EvtSessionEnd, 0, id, "")
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
