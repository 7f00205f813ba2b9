// Package protocol decodes the frames of the live monitor feed.
//
// The server sends one static frame describing the match, then a step frame
// per simulation step:
//
//	{"type": "static", "content": {...StaticWorld...}}
//	{"type": "step",   "content": {...DynamicWorld...}}
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/gridwatch/internal/errors"
	"github.com/Iron-Ham/gridwatch/internal/world"
)

// Frame types.
const (
	TypeStatic = "static"
	TypeStep   = "step"
)

// Envelope routes a frame by type. Content is decoded separately.
type Envelope struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// DecodeEnvelope parses a raw frame. Unknown types and frames without
// content are rejected.
func DecodeEnvelope(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, errors.NewFrameError("", "decode envelope", fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err))
	}
	switch env.Type {
	case TypeStatic, TypeStep:
	default:
		return Envelope{}, errors.NewFrameError(env.Type, "unknown frame type", errors.ErrMalformedFrame)
	}
	if len(env.Content) == 0 || string(env.Content) == "null" {
		return Envelope{}, errors.NewFrameError(env.Type, "missing content", errors.ErrMalformedFrame)
	}
	return env, nil
}

// DecodeStatic decodes the content of a static frame.
func DecodeStatic(raw json.RawMessage) (*world.StaticWorld, error) {
	var s world.StaticWorld
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.NewFrameError(TypeStatic, "decode content", fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err))
	}
	return &s, nil
}

// DecodeDynamic decodes the content of a step frame.
func DecodeDynamic(raw json.RawMessage) (*world.DynamicWorld, error) {
	var d world.DynamicWorld
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errors.NewFrameError(TypeStep, "decode content", fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err))
	}
	return &d, nil
}

// Encode wraps v in an envelope of the given type.
func Encode(typ string, v any) ([]byte, error) {
	content, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s content: %w", typ, err)
	}
	return json.Marshal(Envelope{Type: typ, Content: content})
}
