package engine

import (
	"errors"
	"fmt"
)

// GameError represents an operation the game refused or could not complete.
//
// GameError includes structured fields for diagnostics.
type GameError struct {
	// Code identifies the error category.
	Code GameErrorCode

	// Message is a human-readable description.
	Message string

	// GameID identifies the affected game.
	GameID string

	// Seq is the event sequence number involved, 0 if none.
	Seq int64

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// GameErrorCode categorizes game errors.
type GameErrorCode string

const (
	// ErrCodeRoundInProgress indicates StartRound was called before round end.
	ErrCodeRoundInProgress GameErrorCode = "ROUND_IN_PROGRESS"

	// ErrCodeInvalidTake indicates a take addressed a missing source or tile.
	ErrCodeInvalidTake GameErrorCode = "INVALID_TAKE"

	// ErrCodeInvalidTiles indicates a discard contained non-colour tiles.
	ErrCodeInvalidTiles GameErrorCode = "INVALID_TILES"

	// ErrCodeReplayMismatch indicates a replayed event diverged from the journal.
	ErrCodeReplayMismatch GameErrorCode = "REPLAY_MISMATCH"

	// ErrCodeRecordFailed indicates the recorder rejected an event.
	ErrCodeRecordFailed GameErrorCode = "RECORD_FAILED"
)

// Error implements the error interface.
func (e *GameError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.GameID != "" && e.Seq != 0 {
		msg = fmt.Sprintf("%s (game=%s, seq=%d)", msg, e.GameID, e.Seq)
	} else if e.GameID != "" {
		msg = fmt.Sprintf("%s (game=%s)", msg, e.GameID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *GameError) Unwrap() error {
	return e.Err
}

func hasCode(err error, code GameErrorCode) bool {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code == code
	}
	return false
}

// IsRoundInProgress reports whether err is a ROUND_IN_PROGRESS error.
func IsRoundInProgress(err error) bool {
	return hasCode(err, ErrCodeRoundInProgress)
}

// IsInvalidTake reports whether err is an INVALID_TAKE error.
func IsInvalidTake(err error) bool {
	return hasCode(err, ErrCodeInvalidTake)
}

// IsReplayMismatch reports whether err is a REPLAY_MISMATCH error.
func IsReplayMismatch(err error) bool {
	return hasCode(err, ErrCodeReplayMismatch)
}

// NewReplayMismatch creates a GameError for a diverging replay.
func NewReplayMismatch(gameID string, seq int64, want, got string) *GameError {
	return &GameError{
		Code:    ErrCodeReplayMismatch,
		Message: "replayed snapshot differs from journal",
		GameID:  gameID,
		Seq:     seq,
		Details: map[string]string{
			"want": want,
			"got":  got,
		},
	}
}
