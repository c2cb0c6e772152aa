// Package videopipe decodes a live stream of compressed video frames into
// raw pixel planes, decoupling the producer of compressed data from the
// consumers of decoded pixels through an asynchronous pipeline.
//
// A producer pushes encoded packets with PushData (fire and forget), a
// dedicated worker drives the decoder, and decoded frames are delivered to
// subscribers in decode order.
package videopipe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	ilog "github.com/pion/videopipe/internal/logging"
	"github.com/pion/videopipe/pkg/decoder"
	"github.com/pion/videopipe/pkg/frame"
	"github.com/pion/videopipe/pkg/packetqueue"
)

const (
	defaultPollInterval     = 10 * time.Millisecond
	defaultFailureThreshold = 30
)

// Option configures a DecodeSession.
type Option func(*DecodeSession)

// WithLoggerFactory replaces the default logger factory.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(s *DecodeSession) {
		s.log = f.NewLogger("videopipe")
	}
}

// WithPollInterval sets how often the decode loop polls the decoder for
// output while frames are in flight.
func WithPollInterval(d time.Duration) Option {
	return func(s *DecodeSession) {
		s.pollInterval = d
	}
}

// WithFailureWarnThreshold sets after how many consecutive decode failures
// the loop escalates to warning-level logs. The loop never halts on decode
// failures; owners that want a stronger policy can watch Stats.
func WithFailureWarnThreshold(n uint64) Option {
	return func(s *DecodeSession) {
		s.warnThreshold = n
	}
}

// Stats is a snapshot of a session's decode counters.
type Stats struct {
	// PacketsSubmitted is the number of packets handed to the decoder.
	PacketsSubmitted uint64
	// FramesDecoded is the number of frames extracted and emitted.
	FramesDecoded uint64
	// FramesFailed is the number of decoder frames dropped during
	// extraction.
	FramesFailed uint64
	// ConsecutiveFailures counts decode cycle failures since the last
	// successfully emitted frame.
	ConsecutiveFailures uint64
}

// DecodeSession owns one decode pipeline: the encoded packet queue, the
// decoder context and the worker loop driving them.
//
// The zero value is not usable; construct sessions with NewDecodeSession.
type DecodeSession struct {
	id    string
	neg   *frame.Negotiator
	queue *packetqueue.Queue
	dec   decoder.Decoder
	out   emitter
	log   logging.LeveledLogger

	pollInterval  time.Duration
	warnThreshold uint64

	submitted   atomic.Uint64
	decoded     atomic.Uint64
	failed      atomic.Uint64
	consecutive atomic.Uint64
	started     atomic.Bool
	closed      atomic.Bool

	// nextPos is only touched by the decode loop goroutine.
	nextPos uint64

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDecodeSession negotiates the pixel formats for the stream and prepares
// a session. No decoder resources are allocated until Start. Negotiation
// errors are returned synchronously and leave no partial state behind.
func NewDecodeSession(s frame.Stream, opts ...Option) (*DecodeSession, error) {
	neg, err := frame.Negotiate(s)
	if err != nil {
		return nil, errors.Wrap(err, "negotiate stream format")
	}

	sess := &DecodeSession{
		id:            uuid.NewString(),
		neg:           neg,
		queue:         packetqueue.New(),
		pollInterval:  defaultPollInterval,
		warnThreshold: defaultFailureThreshold,
	}
	for _, opt := range opts {
		opt(sess)
	}
	if sess.log == nil {
		sess.log = ilog.NewLogger("videopipe")
	}

	return sess, nil
}

// ID returns the session's unique identifier.
func (s *DecodeSession) ID() string {
	return s.id
}

// OverwriteTargetFormat replaces the negotiated target pixel format. It may
// only be called before Start; afterwards the format is frozen and the call
// fails with frame.ErrInvalidState.
func (s *DecodeSession) OverwriteTargetFormat(f frame.Format) error {
	return s.neg.OverwriteTarget(f)
}

// OnDecodedFrame registers a handler invoked synchronously from the decode
// loop for every decoded frame. Handlers must not block; zero handlers is
// fine, frames are then simply discarded after extraction.
func (s *DecodeSession) OnDecodedFrame(fn func(frame.Decoded)) {
	s.out.subscribe(fn)
}

// PushData enqueues one encoded frame for decoding. It never blocks and
// never fails; the queue is unbounded. Safe to call concurrently with the
// decode loop.
func (s *DecodeSession) PushData(pkt []byte) {
	s.queue.Push(pkt)
}

// Start creates the decoder context and launches the decode worker. The
// worker runs until ctx is cancelled or the session is closed. Starting
// twice fails with frame.ErrInvalidState.
func (s *DecodeSession) Start(ctx context.Context) error {
	stream := s.neg.Stream()
	if stream.Codec == frame.CodecRawRGB {
		// The layout was accepted and stored at negotiation time, but no
		// decode path exists for it.
		return errors.Wrap(decoder.ErrNotImplemented, "raw RGB decode path")
	}

	if !s.started.CompareAndSwap(false, true) {
		return errors.Wrap(frame.ErrInvalidState, "session already started")
	}

	dec, err := decoder.Build(stream.Codec)
	if err != nil {
		s.started.Store(false)
		return err
	}

	err = s.neg.CreateContext(func() error {
		if err := dec.Configure(stream); err != nil {
			return errors.Wrap(err, "configure decoder")
		}

		if pair := s.neg.Pair(); pair.NeedsResample() {
			r, ok := dec.(decoder.Resampler)
			if !ok {
				return errors.Wrapf(decoder.ErrResampleUnsupported,
					"%s to %s", pair.Source, pair.Target)
			}
			return errors.Wrap(r.ConfigureResample(pair), "configure resampler")
		}
		return nil
	})
	if err != nil {
		if cerr := dec.Close(); cerr != nil {
			s.log.Warnf("closing decoder after failed start: %v", cerr)
		}
		s.started.Store(false)
		return err
	}

	s.dec = dec
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)

	s.log.Infof("session %s started: %s %dx%d@%g", s.id, stream.Codec,
		stream.Width, stream.Height, stream.FrameRate)
	return nil
}

// Stats returns a snapshot of the session counters.
func (s *DecodeSession) Stats() Stats {
	return Stats{
		PacketsSubmitted:    s.submitted.Load(),
		FramesDecoded:       s.decoded.Load(),
		FramesFailed:        s.failed.Load(),
		ConsecutiveFailures: s.consecutive.Load(),
	}
}

// Close stops the decode worker and waits for it to release the decoder
// context. It is idempotent and safe to call on a session that was never
// started.
func (s *DecodeSession) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	return nil
}
