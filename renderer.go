package main

import (
	"bytes"
	"log"

	"github.com/vmihailenco/msgpack/v5"
)

// Renderer ids a client can pick
const (
	RendererNone    = "none"
	RendererJSON    = "json"
	RendererMsgpack = "msgpack"
	RendererTerm    = "term"
)

// Renderer draws or ships one snapshot per render pass. It must not mutate
// the snapshot or hold on to its slices after returning.
type Renderer interface {
	Render(s *Snapshot)
}

type nopRenderer struct{}

func (nopRenderer) Render(*Snapshot) {}

// NopRenderer returns a renderer that draws nothing
func NopRenderer() Renderer {
	return nopRenderer{}
}

// RendererSet maps ids to renderers with a fallback for unknown ids
type RendererSet struct {
	byID     map[string]Renderer
	fallback Renderer
}

// NewRendererSet creates a set whose unknown ids resolve to fallback.
// A nil fallback becomes the no-op renderer.
func NewRendererSet(fallback Renderer) *RendererSet {
	if fallback == nil {
		fallback = NopRenderer()
	}
	return &RendererSet{
		byID:     map[string]Renderer{RendererNone: NopRenderer()},
		fallback: fallback,
	}
}

// Register binds id to r, replacing any previous binding. nil is ignored.
func (rs *RendererSet) Register(id string, r Renderer) {
	if r == nil {
		return
	}
	rs.byID[id] = r
}

// Resolve returns the renderer for id, or the fallback
func (rs *RendererSet) Resolve(id string) Renderer {
	if r, ok := rs.byID[id]; ok {
		return r
	}
	return rs.fallback
}

// Broadcaster is the outbound half of a client connection
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// JSONRenderer ships snapshots as JSON state envelopes
type JSONRenderer struct {
	out Broadcaster
}

// NewJSONRenderer creates a renderer writing to out
func NewJSONRenderer(out Broadcaster) *JSONRenderer {
	return &JSONRenderer{out: out}
}

func (r *JSONRenderer) Render(s *Snapshot) {
	r.out.SendJSON(Envelope{T: MsgState, Data: s})
}

// MsgpackRenderer ships snapshots as binary msgpack frames. The encoder and
// its buffer are reused across passes.
type MsgpackRenderer struct {
	out Broadcaster
	buf bytes.Buffer
	enc *msgpack.Encoder
}

// NewMsgpackRenderer creates a renderer writing to out
func NewMsgpackRenderer(out Broadcaster) *MsgpackRenderer {
	r := &MsgpackRenderer{out: out}
	r.enc = msgpack.NewEncoder(&r.buf)
	r.enc.SetCustomStructTag("msgpack")
	return r
}

func (r *MsgpackRenderer) Render(s *Snapshot) {
	r.buf.Reset()
	if err := r.enc.Encode(s); err != nil {
		log.Printf("msgpack encode error: %v", err)
		return
	}
	r.out.SendBinary(r.buf.Bytes())
}

// DecodeSnapshot reads a binary snapshot produced by MsgpackRenderer
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
