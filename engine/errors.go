package engine

import "errors"

// Sentinel errors for the engine package.
// Use errors.Is to check: errors.Is(err, engine.ErrEmptyQueue)
var (
	ErrCatalogNotLoaded   = errors.New("engine: catalog not loaded")
	ErrEmptyQueue         = errors.New("engine: no items for this mode and subject")
	ErrInvalidMode        = errors.New("engine: invalid mode")
	ErrInvalidDirection   = errors.New("engine: invalid direction")
	ErrInvalidScore       = errors.New("engine: score out of range")
	ErrSessionCompleted   = errors.New("engine: session already completed")
	ErrNotAnswered        = errors.New("engine: current question not answered yet")
	ErrBackwardNotAllowed = errors.New("engine: backward navigation only in learn mode")
)
