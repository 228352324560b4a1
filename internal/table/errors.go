package table

import (
	"errors"
	"fmt"
)

// ContractErrorCode categorizes caller contract violations.
type ContractErrorCode string

const (
	// ErrCodeSourceOutOfRange indicates a take addressed a factory slot that
	// does not exist (and is not the center slot).
	ErrCodeSourceOutOfRange ContractErrorCode = "SOURCE_OUT_OF_RANGE"

	// ErrCodeTileOutOfRange indicates a take selected a tile position that
	// does not exist in the addressed factory or center.
	ErrCodeTileOutOfRange ContractErrorCode = "TILE_OUT_OF_RANGE"
)

// ContractError describes an invalid selection made by a caller.
//
// Area.TakeTiles, Factory.Take and Center.Take panic with a *ContractError;
// Area.CheckTake returns the same value as an ordinary error.
type ContractError struct {
	Code    ContractErrorCode
	Message string

	// Source is the addressed source slot, -1 when not applicable.
	Source int

	// Index is the selected tile position.
	Index int

	// Len is the size of the collection that was indexed.
	Len int
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Source >= 0 {
		return fmt.Sprintf("%s: %s (source=%d, index=%d, len=%d)", e.Code, e.Message, e.Source, e.Index, e.Len)
	}
	return fmt.Sprintf("%s: %s (index=%d, len=%d)", e.Code, e.Message, e.Index, e.Len)
}

// IsContractError reports whether err is or wraps a *ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

func newTileRangeError(index, n int) *ContractError {
	return &ContractError{
		Code:    ErrCodeTileOutOfRange,
		Message: "selected tile position does not exist",
		Source:  -1,
		Index:   index,
		Len:     n,
	}
}

func newSourceRangeError(source, factories int) *ContractError {
	return &ContractError{
		Code:    ErrCodeSourceOutOfRange,
		Message: fmt.Sprintf("source must be a factory index or %d for the center", factories),
		Source:  source,
		Index:   -1,
		Len:     factories + 1,
	}
}
