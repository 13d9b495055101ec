// Package ident generates human-readable identifiers of the form
//
//	timestamp 2026-10-19 14:03:07 id 550e8400-e29b-41d4-a716-446655440000
//
// combining the local wall-clock time with a random (version 4) UUID.
// Uniqueness rests entirely on the UUID's random bits; nothing here
// detects or prevents collisions.
package ident

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp format embedded in identifiers.
const TimeLayout = "2006-01-02 15:04:05"

// ErrMalformed is returned by Parse for text that is not an identifier.
var ErrMalformed = errors.New("malformed identifier")

// Stamp is the parsed form of an identifier.
type Stamp struct {
	Time time.Time
	ID   uuid.UUID
}

// String renders the stamp as "timestamp <time> id <uuid>".
func (s Stamp) String() string {
	return fmt.Sprintf("timestamp %s id %s", s.Time.Format(TimeLayout), s.ID)
}

// Parse reads an identifier produced by Stamp.String or Generator.Generate.
// The timestamp is interpreted in the local time zone.
//
// The text carries no UTC offset, so Parse recovers the original instant only
// when the local zone is unchanged and the wall time is unambiguous. During a
// daylight-saving fall-back hour the same text names two instants and time
// picks the first; a stamp written from the second one parses an hour early.
// Callers that need the instant must store it separately.
func Parse(text string) (Stamp, error) {
	rest, ok := strings.CutPrefix(text, "timestamp ")
	if !ok {
		return Stamp{}, fmt.Errorf("%w: missing timestamp prefix in %q", ErrMalformed, text)
	}
	ts, idText, ok := strings.Cut(rest, " id ")
	if !ok {
		return Stamp{}, fmt.Errorf("%w: missing id in %q", ErrMalformed, text)
	}

	t, err := time.ParseInLocation(TimeLayout, ts, time.Local)
	if err != nil {
		return Stamp{}, fmt.Errorf("%w: timestamp: %v", ErrMalformed, err)
	}
	// uuid.Parse also accepts urn: and braced forms; only the 36-char form is valid here.
	if len(idText) != 36 {
		return Stamp{}, fmt.Errorf("%w: id %q is not in 8-4-4-4-12 form", ErrMalformed, idText)
	}
	id, err := uuid.Parse(idText)
	if err != nil {
		return Stamp{}, fmt.Errorf("%w: id: %v", ErrMalformed, err)
	}

	return Stamp{Time: t, ID: id}, nil
}

// Generator produces identifiers from a clock and a UUID source.
//
// Thread-safety: Generator is safe for concurrent use as long as its sources are.
// The defaults from New are.
type Generator struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// New returns a Generator backed by time.Now and uuid.New.
func New() *Generator {
	return &Generator{now: time.Now, newID: uuid.New}
}

// NewWithSources returns a Generator with injected clock and UUID sources.
// Nil sources fall back to the defaults used by New.
func NewWithSources(now func() time.Time, newID func() uuid.UUID) *Generator {
	g := New()
	if now != nil {
		g.now = now
	}
	if newID != nil {
		g.newID = newID
	}
	return g
}

// Next returns a fresh stamp with the time truncated to whole seconds,
// matching the precision of the rendered form.
func (g *Generator) Next() Stamp {
	return Stamp{
		Time: g.now().Local().Truncate(time.Second),
		ID:   g.newID(),
	}
}

// Generate returns a fresh identifier as text.
func (g *Generator) Generate() string {
	return g.Next().String()
}
