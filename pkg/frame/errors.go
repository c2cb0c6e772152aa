package frame

import "github.com/pkg/errors"

var (
	// ErrUnsupportedCodec is returned when a stream names a codec kind this
	// pipeline does not recognize.
	ErrUnsupportedCodec = errors.New("frame: unsupported codec")
	// ErrInvalidState is returned when an operation is attempted in the
	// wrong lifecycle phase, e.g. changing the target format after the
	// decode context has been created.
	ErrInvalidState = errors.New("frame: invalid lifecycle state")
)
