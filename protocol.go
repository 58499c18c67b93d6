package main

import (
	"encoding/json"
	"time"
)

// Client -> Server message types
const (
	MsgStart       = "start"   // begin a run from the menu or game over
	MsgInput       = "input"   // held controls
	MsgPause       = "pause"   // freeze the run
	MsgResume      = "resume"  // continue a paused run
	MsgRestart     = "restart" // abandon the current run and start over
	MsgCodec       = "codec"   // switch snapshot renderer
	MsgControl     = "control" // phone controller attach
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgAuth        = "auth" // resume with a stored token
	MsgLeaderboard = "leaderboard"
	MsgProfile     = "profile"
)

// Server -> Client message types
const (
	MsgWelcome     = "welcome"
	MsgState       = "state"
	MsgEvent       = "evt"
	MsgOver        = "over"
	MsgError       = "error"
	MsgAuthOK      = "auth_ok"
	MsgControlOK   = "control_ok"
	MsgCtrlOn      = "ctrl_on"  // notify desktop: controller attached
	MsgCtrlOff     = "ctrl_off" // notify desktop: controller detached
	MsgProfileData = "profile_data"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; the raw payload is decoded by the handler
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// PlayerInput is the held control state, sent whenever it changes.
// Touch is the playfield point under the finger on touch devices.
type PlayerInput struct {
	Left  bool   `json:"l"`
	Right bool   `json:"r"`
	Up    bool   `json:"u"`
	Down  bool   `json:"d"`
	Fire  bool   `json:"f"`
	Touch *Point `json:"touch,omitempty"`
}

// StartMsg optionally picks the snapshot renderer for the run
type StartMsg struct {
	Codec string `json:"codec"`
}

// CodecMsg switches the snapshot renderer mid-run
type CodecMsg struct {
	Codec string `json:"codec"`
}

// WelcomeMsg is sent once a connection has a session
type WelcomeMsg struct {
	SessionID string  `json:"sid"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	TickRate  int     `json:"tick_rate"`
	Lives     int     `json:"lives"`
}

// EventMsg forwards one event bus publication to the client
type EventMsg struct {
	Topic   Topic `json:"topic"`
	Payload any   `json:"payload"`
}

// OverMsg summarizes a finished run
type OverMsg struct {
	Score        int              `json:"score"`
	Level        int              `json:"level"`
	Duration     float64          `json:"duration"`
	Best         int              `json:"best"`
	Achievements []AchievementDef `json:"achievements,omitempty"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// ControlMsg is sent by a phone controller to attach to a session
type ControlMsg struct {
	SID string `json:"sid"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates an existing account
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg resumes a login from a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// LeaderboardMsg requests the top runs
type LeaderboardMsg struct {
	Limit int `json:"limit"`
}

// ProfileDataMsg returns the authenticated player's totals
type ProfileDataMsg struct {
	Username  string       `json:"username"`
	BestScore int          `json:"best_score"`
	BestLevel int          `json:"best_level"`
	Runs      int          `json:"runs"`
	Kills     int          `json:"kills"`
	Playtime  float64      `json:"playtime"`
	Recent    []RunSummary `json:"recent"`
}

// RunSummary is one past run in a profile
type RunSummary struct {
	Score    int       `json:"score"`
	Level    int       `json:"level"`
	Kills    int       `json:"kills"`
	Duration float64   `json:"duration"`
	At       time.Time `json:"at"`
}
