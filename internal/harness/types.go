package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/azul/internal/tile"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
	Source int    `json:"source,omitempty"`
	Index  int    `json:"index,omitempty"`

	// Tiles holds the tiles taken or discarded.
	Tiles []tile.Tile `json:"tiles,omitempty"`

	// Seq is the game version after the step.
	Seq int64 `json:"seq"`

	// Error is the error code of a refused step.
	Error string `json:"error,omitempty"`

	// Describe is the area description after the step.
	Describe string `json:"describe,omitempty"`
}

// String renders the event for traces and golden files:
//
//	step 2: take source=0 index=1 seq=2 tiles=[B,B]
//	  Factory0()|Factory1(R,B,Y,Y)|Center(R,R)|Bag()|UsedTiles()
func (e TraceEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %d: %s", e.Step, e.Action)
	if e.Action == ActionTake {
		fmt.Fprintf(&b, " source=%d index=%d", e.Source, e.Index)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%s", e.Error)
		return b.String()
	}
	fmt.Fprintf(&b, " seq=%d", e.Seq)
	if len(e.Tiles) > 0 {
		fmt.Fprintf(&b, " tiles=[%s]", tile.Join(e.Tiles))
	}
	fmt.Fprintf(&b, "\n  %s", e.Describe)
	return b.String()
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the area description after the last step.
	Final string `json:"final"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
