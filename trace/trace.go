// Package trace defines the structured events produced by a simulation run
// and the sinks that render them.
package trace

// Word is an address/value pair from a memory dump.
type Word struct {
	Addr  uint32 `json:"addr"`
	Value int32  `json:"value"`
}

// Line is one disassembled word of the static listing.
type Line struct {
	Addr   uint32 `json:"addr"`
	Word   uint32 `json:"word"`
	Disasm string `json:"disasm"`
}

// Listing is emitted once before the first cycle.
type Listing struct {
	InitialPC uint32 `json:"initial_pc"`
	DataBase  uint32 `json:"data_base"`
	InitialSP uint32 `json:"initial_sp"`
	NumData   uint32 `json:"num_data"`

	Data []Word `json:"data"`
	Text []Line `json:"text"`
}

// Cycle is the state of the machine right after one instruction.
type Cycle struct {
	Number uint64 `json:"cycle"`

	// Fetched instruction
	PC     uint32 `json:"pc"`
	Word   uint32 `json:"word"`
	Disasm string `json:"disasm"`

	Registers [32]int32 `json:"registers"`
	Data      []Word    `json:"data"`
	Stack     []Word    `json:"stack"`
}

// Writer consumes trace events in order.
type Writer interface {
	WriteListing(l *Listing) error
	WriteCycle(c *Cycle) error
	Flush() error
}

// Discard is a Writer that drops every event.
var Discard Writer = discard{}

type discard struct{}

func (discard) WriteListing(*Listing) error { return nil }
func (discard) WriteCycle(*Cycle) error     { return nil }
func (discard) Flush() error                { return nil }

// Recorder keeps every event in memory.
type Recorder struct {
	Listings []Listing
	Cycles   []Cycle
}

// WriteListing records l.
func (r *Recorder) WriteListing(l *Listing) error {
	r.Listings = append(r.Listings, *l)
	return nil
}

// WriteCycle records c.
func (r *Recorder) WriteCycle(c *Cycle) error {
	r.Cycles = append(r.Cycles, *c)
	return nil
}

// Flush does nothing.
func (r *Recorder) Flush() error {
	return nil
}
