package videopipe

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/pion/videopipe/pkg/decoder"
)

// run is the decode worker. Instead of spinning, it blocks until either new
// encoded data arrives or the decoder may owe output, then performs one
// decode cycle: at most one frame receive and one packet submission, in that
// order. Per-cycle errors are contained here and never surfaced to producers
// or consumers.
//
// On exit the decoder context is released, so teardown via ctx cancellation
// or Close does not leak decoder-owned memory.
func (s *DecodeSession) run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		if err := s.dec.Close(); err != nil {
			s.log.Warnf("closing decoder: %v", err)
		}
	}()

	poll := time.NewTicker(s.pollInterval)
	defer poll.Stop()

	for {
		if s.inFlight() == 0 && s.queue.Len() == 0 {
			// Nothing submitted and nothing queued: the only things
			// worth waking for are a new packet or teardown.
			select {
			case <-ctx.Done():
				return
			case <-s.queue.Wait():
			}
		} else {
			select {
			case <-ctx.Done():
				return
			case <-s.queue.Wait():
			case <-poll.C:
			}
		}

		s.cycle()
	}
}

// inFlight estimates how many frames the decoder may still owe. While it is
// non-zero the loop keeps polling for output even if no new packets arrive.
func (s *DecodeSession) inFlight() uint64 {
	return s.submitted.Load() - s.decoded.Load() - s.failed.Load()
}

func (s *DecodeSession) cycle() {
	// Receive first so output decoded since the last cycle is drained
	// before more work is submitted.
	src, err := s.dec.ReceiveFrame()
	switch {
	case err == nil:
		pos := s.nextPos
		s.nextPos++

		out, exErr := extract(src, pos, s.neg.Pair().NeedsResample())
		if exErr != nil {
			s.failed.Inc()
			s.countFailure(errors.Wrapf(exErr, "frame %d", pos))
		} else {
			s.decoded.Inc()
			s.consecutive.Store(0)
			s.out.emit(out)
		}

	case errors.Is(err, decoder.ErrNotReady):
		// Expected: the decoder has nothing to emit this cycle.

	default:
		s.countFailure(errors.Wrap(err, "receive frame"))
	}

	pkt, ok := s.queue.TryPop()
	if !ok {
		return
	}
	if err := s.dec.Submit(pkt); err != nil {
		s.countFailure(errors.Wrap(err, "submit packet"))
		return
	}
	s.submitted.Inc()
}

// countFailure records a contained decode cycle failure. The pipeline keeps
// running regardless; once the consecutive failure count crosses the
// configured threshold, logging escalates from error to warning cadence so
// a persistently broken stream is visible without flooding.
func (s *DecodeSession) countFailure(err error) {
	n := s.consecutive.Inc()
	if n >= s.warnThreshold && n%s.warnThreshold == 0 {
		s.log.Warnf("session %s: %d consecutive decode failures, last: %v", s.id, n, err)
		return
	}
	s.log.Errorf("session %s: %v", s.id, err)
}
