package main

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120
	binaryMarker      = 0xFF
	profileRecentRuns = 5
)

// binary input frame: [0x01, flags, tx_hi, tx_lo, ty_hi, ty_lo]
const (
	binInputTag  = 0x01
	binInputLen  = 6
	binFlagLeft  = 0x01
	binFlagRight = 0x02
	binFlagUp    = 0x04
	binFlagDown  = 0x08
	binFlagFire  = 0x10
	binFlagTouch = 0x20
)

// Client represents a WebSocket connection. A client either owns a
// session or, after a control message, drives another client's session
// as its phone controller.
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	sessionID    string
	remoteAddr   string
	isController bool
	msgCount     int
	msgResetAt   time.Time
	// auth state
	authPlayerID int64  // 0 = guest
	authUsername string // "" = guest
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		if msgType == websocket.BinaryMessage && len(message) == binInputLen && message[0] == binInputTag {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			var err error
			if len(message) > 0 && message[0] == binaryMarker {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }() // send on closed channel after unregister
	select {
	case c.send <- data:
	default:
		// client too slow, drop
	}
}

// SendBinary queues data as a binary WebSocket message. The bytes are
// copied behind a marker byte so WritePump can tell them from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = binaryMarker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(err error) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgPause:
		c.withSession(func(s *Session) { s.Pause() })
	case MsgResume:
		c.withSession(func(s *Session) { s.Resume() })
	case MsgRestart:
		c.withSession(func(s *Session) { s.Restart() })
	case MsgCodec:
		c.handleCodec(env.D)
	case MsgControl:
		c.handleControl(env.D)
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgLeaderboard:
		c.handleLeaderboard(env.D)
	case MsgProfile:
		c.handleProfile()
	}
}

// withSession runs fn on the client's session; controllers may only steer
func (c *Client) withSession(fn func(*Session)) {
	if c.sessionID == "" || c.isController {
		return
	}
	sess, err := c.hub.sessions.GetSession(c.sessionID)
	if err != nil {
		return
	}
	fn(sess)
}

func (c *Client) handleStart(data json.RawMessage) {
	var msg StartMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	c.withSession(func(s *Session) { s.Start(msg.Codec) })
}

func (c *Client) handleCodec(data json.RawMessage) {
	var msg CodecMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	c.withSession(func(s *Session) { s.SetCodec(msg.Codec) })
}

func (c *Client) handleInput(data json.RawMessage) {
	var in PlayerInput
	if err := json.Unmarshal(data, &in); err != nil {
		return
	}
	c.applyInput(in)
}

// handleBinaryInput decodes the compact 6-byte input frame
func (c *Client) handleBinaryInput(msg []byte) {
	flags := msg[1]
	in := PlayerInput{
		Left:  flags&binFlagLeft != 0,
		Right: flags&binFlagRight != 0,
		Up:    flags&binFlagUp != 0,
		Down:  flags&binFlagDown != 0,
		Fire:  flags&binFlagFire != 0,
	}
	if flags&binFlagTouch != 0 {
		in.Touch = &Point{
			X: float64(uint16(msg[2])<<8 | uint16(msg[3])),
			Y: float64(uint16(msg[4])<<8 | uint16(msg[5])),
		}
	}
	c.applyInput(in)
}

// applyInput accepts input from the owner and from a paired controller
func (c *Client) applyInput(in PlayerInput) {
	if c.sessionID == "" {
		return
	}
	sess, err := c.hub.sessions.GetSession(c.sessionID)
	if err != nil {
		return
	}
	sess.SetInput(in)
}

func (c *Client) handleControl(data json.RawMessage) {
	var msg ControlMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.SID == c.sessionID && !c.isController {
		return // own session
	}
	sess, err := c.hub.sessions.GetSession(msg.SID)
	if err != nil {
		c.sendError(err)
		return
	}

	// a controller gives up whatever it was doing before
	c.hub.detach(c)
	c.sessionID = msg.SID
	c.isController = true

	sess.AttachController(c)
	c.SendJSON(Envelope{T: MsgControlOK, Data: map[string]string{"sid": msg.SID}})
}

func (c *Client) handleRegister(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.sendAuthError(err)
		return
	}
	c.authenticated(id, msg.Username, token)
}

func (c *Client) handleLogin(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.sendAuthError(err)
		return
	}
	c.authenticated(id, msg.Username, token)
}

func (c *Client) handleAuth(data json.RawMessage) {
	if c.hub.auth == nil {
		return
	}
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.sendError(ErrInvalidToken)
		return
	}
	c.authenticated(id, username, msg.Token)
}

// sendAuthError reports user-facing auth failures verbatim and hides the rest
func (c *Client) sendAuthError(err error) {
	switch {
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrBadCredentials),
		errors.Is(err, ErrRateLimited):
		c.sendError(err)
	default:
		log.Printf("auth error for %s: %v", c.remoteAddr, err)
		c.sendError(errors.New("internal error"))
	}
}

func (c *Client) authenticated(id int64, username, token string) {
	c.authPlayerID = id
	c.authUsername = username
	c.withSession(func(s *Session) { s.SetAuth(id, username) })
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{
		Token:    token,
		Username: username,
		PlayerID: id,
	}})
}

func (c *Client) handleLeaderboard(data json.RawMessage) {
	if c.hub.db == nil {
		c.SendJSON(Envelope{T: MsgLeaderboard, Data: []LeaderboardEntry{}})
		return
	}
	var msg LeaderboardMsg
	if len(data) > 0 {
		json.Unmarshal(data, &msg)
	}
	entries, err := c.hub.db.GetLeaderboard(msg.Limit)
	if err != nil {
		log.Printf("leaderboard error: %v", err)
		c.sendError(errors.New("leaderboard unavailable"))
		return
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	c.SendJSON(Envelope{T: MsgLeaderboard, Data: entries})
}

func (c *Client) handleProfile() {
	if c.hub.db == nil || c.authPlayerID == 0 {
		c.sendError(errors.New("not authenticated"))
		return
	}
	stats, err := c.hub.db.GetStats(c.authPlayerID)
	if err != nil || stats == nil {
		c.sendError(errors.New("profile not found"))
		return
	}
	recent := []RunSummary{}
	runs, err := c.hub.db.RecentRuns(c.authPlayerID, profileRecentRuns)
	if err != nil {
		log.Printf("profile: recent runs: %v", err)
	}
	for _, r := range runs {
		recent = append(recent, RunSummary{Score: r.Score, Level: r.Level, Kills: r.Kills, Duration: r.Duration, At: r.CreatedAt})
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username:  c.authUsername,
		BestScore: stats.BestScore,
		BestLevel: stats.BestLevel,
		Runs:      stats.Runs,
		Kills:     stats.Kills,
		Playtime:  stats.Playtime,
		Recent:    recent,
	}})
}
