package decoder

import "github.com/pkg/errors"

var (
	// ErrNotReady means the decoder has no frame to emit this cycle. It is
	// expected and non-fatal; callers simply retry on a later cycle.
	ErrNotReady = errors.New("decoder: no frame ready")
	// ErrNotImplemented marks a recognized but unimplemented decode path.
	ErrNotImplemented = errors.New("decoder: not implemented")
	// ErrInvalidFrameData means the decoder reported a frame with a missing
	// or corrupt plane buffer. The frame is dropped; the pipeline continues.
	ErrInvalidFrameData = errors.New("decoder: invalid frame data")
	// ErrResampleUnsupported is returned when a pixel format conversion
	// would be required but no resample path exists.
	ErrResampleUnsupported = errors.New("decoder: resampling unsupported")
	// ErrUnknownCodec means no decoder builder is registered for the
	// requested codec kind.
	ErrUnknownCodec = errors.New("decoder: no decoder registered")
)
