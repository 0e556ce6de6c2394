package engine

import "errors"

var (
	// ErrDone signals that the simulation stepped past its end date. It is
	// the terminal "error" a driving loop should treat as success.
	ErrDone = errors.New("backtest complete")

	ErrInvalidVolume = errors.New("order volume must be positive")
	ErrInvalidPrice  = errors.New("order price must be positive")
	ErrInvalidWindow = errors.New("order validity window is malformed")
	ErrInvalidSide   = errors.New("order side does not match instrument class")
)
