package testutil

import "sync"

// ScriptedSource replays a fixed index script for deterministic tests.
//
// Each call to NextIndex consumes one script value and returns it modulo
// bound. Once the script is exhausted every call returns 0. This keeps bag
// draws reproducible without requiring the script to match the exact bound
// sequence a draw will request.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ScriptedSource struct {
	mu     sync.Mutex
	script []int
	pos    int
	bounds []int
}

// NewScriptedSource creates a source that replays script in order.
func NewScriptedSource(script ...int) *ScriptedSource {
	s := make([]int, len(script))
	copy(s, script)
	return &ScriptedSource{script: s}
}

// Cycle returns script repeated n times, a helper for building long scripts.
func Cycle(n int, script ...int) []int {
	out := make([]int, 0, n*len(script))
	for range n {
		out = append(out, script...)
	}
	return out
}

// NextIndex returns script[i] mod bound, or 0 once the script is exhausted.
func (s *ScriptedSource) NextIndex(bound int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = append(s.bounds, bound)
	if s.pos >= len(s.script) {
		return 0
	}
	v := s.script[s.pos] % bound
	if v < 0 {
		v += bound
	}
	s.pos++
	return v
}

// Bounds returns every bound NextIndex was called with, in call order.
func (s *ScriptedSource) Bounds() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.bounds))
	copy(out, s.bounds)
	return out
}

// Remaining returns how many script values have not been consumed.
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.script) - s.pos
}

// Reset rewinds the script and clears recorded bounds.
func (s *ScriptedSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = 0
	s.bounds = nil
}
