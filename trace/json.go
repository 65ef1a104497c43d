package trace

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter renders events as JSON lines, one object per event.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

type jsonEvent struct {
	Type    string   `json:"type"`
	Listing *Listing `json:"listing,omitempty"`
	Cycle   *Cycle   `json:"cycle,omitempty"`
}

// NewJSONWriter creates a JSONWriter on top of w. Call Flush when done.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{w: bw, enc: json.NewEncoder(bw)}
}

// WriteListing writes a "listing" event.
func (j *JSONWriter) WriteListing(l *Listing) error {
	return j.enc.Encode(jsonEvent{Type: "listing", Listing: l})
}

// WriteCycle writes a "cycle" event.
func (j *JSONWriter) WriteCycle(c *Cycle) error {
	return j.enc.Encode(jsonEvent{Type: "cycle", Cycle: c})
}

// Flush writes any buffered output.
func (j *JSONWriter) Flush() error {
	return j.w.Flush()
}
