package frame

import "github.com/pkg/errors"

// PixelPair is the source and target pixel format pair resolved during
// negotiation.
type PixelPair struct {
	Source Format
	Target Format
}

// NeedsResample reports whether a pixel format conversion sits between the
// decoder output and the consumer.
func (p PixelPair) NeedsResample() bool {
	return p.Source != p.Target
}

// Negotiator resolves the pixel formats for a stream and guards the decode
// context lifecycle. The target format may be overwritten until the context
// is created; afterwards the negotiated pair is frozen.
type Negotiator struct {
	stream Stream
	pair   PixelPair
	state  State
}

// Negotiate fixes the source pixel format for the stream's codec kind and
// sets the initial target equal to it.
//
// CodecRawRGB parameters are accepted and stored, but the decode path for
// them is not implemented; attempting to create a context for such a stream
// fails downstream.
func Negotiate(s Stream) (*Negotiator, error) {
	n := &Negotiator{state: StateUninitialized}

	err := n.state.Update(StateInitialized, func() error {
		switch s.Codec {
		case CodecH264, CodecRawYUV:
			n.pair = PixelPair{Source: FormatI420, Target: FormatI420}
		case CodecRawRGB:
			if s.RGB == nil {
				return errors.Wrap(ErrUnsupportedCodec, "raw RGB stream without pixel layout")
			}
			n.pair = PixelPair{Source: FormatRGB, Target: FormatRGB}
		default:
			return errors.Wrapf(ErrUnsupportedCodec, "%q", s.Codec)
		}

		n.stream = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return n, nil
}

// OverwriteTarget replaces the target pixel format. It is only legal while
// the context has not been created yet; NeedsResample is recomputed on every
// successful call.
func (n *Negotiator) OverwriteTarget(f Format) error {
	if n.state != StateInitialized {
		return errors.Wrapf(ErrInvalidState, "target format is frozen in state %s", n.state)
	}

	n.pair.Target = f
	return nil
}

// CreateContext runs f and, if it succeeds, freezes the negotiated formats.
// It can succeed at most once.
func (n *Negotiator) CreateContext(f func() error) error {
	return n.state.Update(StateContextCreated, f)
}

// Stream returns the negotiated stream descriptor.
func (n *Negotiator) Stream() Stream {
	return n.stream
}

// Pair returns the resolved source/target pixel format pair.
func (n *Negotiator) Pair() PixelPair {
	return n.pair
}

// State returns the current lifecycle state.
func (n *Negotiator) State() State {
	return n.state
}
