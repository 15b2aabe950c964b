package timeline

import "errors"

var (
	// ErrValidation reports a malformed mutation payload.
	ErrValidation = errors.New("invalid menu update")

	// ErrIndexOutOfRange reports a day or dish position that does not exist.
	ErrIndexOutOfRange = errors.New("menu position out of range")
)
