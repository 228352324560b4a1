package engine

import "sync/atomic"

// Clock stamps journal events with a game's logical time.
//
// Seq 0 is a game with no events. Each committed event takes the next seq,
// and an event the recorder refused does not consume one, so a journal has
// no gaps. Replay checks exactly that.
type Clock struct {
	now atomic.Int64
}

// NewClock returns a clock at seq 0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the seq of the last committed event.
func (c *Clock) Now() int64 {
	return c.now.Load()
}

// Peek returns the seq the next committed event will take.
func (c *Clock) Peek() int64 {
	return c.now.Load() + 1
}

// Tick commits the next seq and returns it.
func (c *Clock) Tick() int64 {
	return c.now.Add(1)
}
