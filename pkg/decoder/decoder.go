// Package decoder defines the adapter interface between the decode pipeline
// and an actual codec implementation, along with a registry of decoder
// builders keyed by codec kind.
package decoder

import (
	"github.com/pion/videopipe/pkg/frame"
)

// Frame is a decoded frame whose memory is still owned by the decoder. The
// view is only valid until Release is called; callers that need the pixels
// beyond that point must copy them out first.
type Frame interface {
	// Plane returns the buffer of the i-th component, or nil if the
	// decoder did not produce that plane.
	Plane(i int) []byte
	// Stride returns the line size of the i-th plane in bytes.
	Stride(i int) int
	// Release gives the frame back to the decoder. It must be called
	// exactly once for every received frame.
	Release()
}

// Decoder is the adapter to an external codec. Implementations are driven
// from a single goroutine; they do not need to be safe for concurrent use.
type Decoder interface {
	// Configure creates the underlying decode context for the stream.
	Configure(frame.Stream) error
	// Submit hands one compressed packet to the decoder. The packet is not
	// retained after the call returns.
	Submit(pkt []byte) error
	// ReceiveFrame returns the next decoded frame, or ErrNotReady when the
	// decoder has nothing to emit yet.
	ReceiveFrame() (Frame, error)
	// Close releases the decode context.
	Close() error
}

// Resampler is an optional capability of a Decoder. It is consulted only
// when the negotiated source and target pixel formats differ.
type Resampler interface {
	ConfigureResample(frame.PixelPair) error
}

// Builder constructs an unconfigured Decoder.
type Builder func() (Decoder, error)
