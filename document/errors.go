package document

import "errors"

// Errors returned by Engine.Apply. Recoverable no-ops, such as a backspace at
// the start of the document, are not errors.
var (
	// ErrUnknownCommand indicates a command type the engine does not handle.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidCommand indicates a malformed command payload.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrDimsMismatch indicates reflow extents that do not match the line's chunks.
	ErrDimsMismatch = errors.New("chunk extents do not match line")

	// ErrNoMeasurer indicates a reflow on an engine without a Measurer.
	ErrNoMeasurer = errors.New("no measurer configured")
)
