// Package decodertest provides a scripted in-memory decoder for testing the
// decode pipeline without a real codec. Importing the package registers it as
// the H264 decoder, so a blank import is enough for end-to-end tests:
//
//	import _ "github.com/pion/videopipe/pkg/decoder/decodertest"
//
// Each submitted packet produces one synthetic I420 frame whose Y plane
// starts with the packet payload, which lets tests observe ordering.
package decodertest

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/pion/videopipe/pkg/decoder"
	"github.com/pion/videopipe/pkg/frame"
)

func init() {
	decoder.Register(frame.CodecH264, build)
}

var (
	mu   sync.Mutex
	next *Decoder
)

func build() (decoder.Decoder, error) {
	mu.Lock()
	defer mu.Unlock()

	d := next
	if d == nil {
		d = New()
	}
	next = nil
	return d, nil
}

// Next returns the Decoder instance that the next build for CodecH264 will
// hand out, creating it if necessary. Tests use it to script behaviour before
// starting a session and to inspect counters afterwards.
func Next() *Decoder {
	mu.Lock()
	defer mu.Unlock()

	if next == nil {
		next = New()
	}
	return next
}

// Decoder is a scripted decoder. The zero scripting produces one frame per
// submitted packet with no artificial latency.
type Decoder struct {
	mu sync.Mutex

	width        int
	height       int
	latency      int
	countdown    int
	missingPlane int
	receiveErr   error
	submitErr    error
	pending      [][]byte

	frames   int
	releases int
	closes   int
}

// New returns an unregistered scripted decoder.
func New() *Decoder {
	return &Decoder{missingPlane: -1}
}

// SetReceiveLatency makes every frame only become available after n
// additional ReceiveFrame calls returning ErrNotReady.
func (d *Decoder) SetReceiveLatency(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latency = n
	d.countdown = n
}

// SetMissingPlane makes produced frames report a nil buffer for plane i.
func (d *Decoder) SetMissingPlane(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.missingPlane = i
}

// FailNextReceive makes the next ReceiveFrame call return err once.
func (d *Decoder) FailNextReceive(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.receiveErr = err
}

// FailNextSubmit makes the next Submit call return err once.
func (d *Decoder) FailNextSubmit(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitErr = err
}

// Frames returns the number of frames handed out so far.
func (d *Decoder) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Releases returns the total number of Release calls across all frames.
func (d *Decoder) Releases() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.releases
}

// Closes returns how many times Close has been called.
func (d *Decoder) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

func (d *Decoder) Configure(s frame.Stream) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("invalid frame dimensions %dx%d", s.Width, s.Height)
	}
	d.width = s.Width
	d.height = s.Height
	return nil
}

func (d *Decoder) Submit(pkt []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.submitErr != nil {
		err := d.submitErr
		d.submitErr = nil
		return err
	}

	d.pending = append(d.pending, pkt)
	return nil
}

func (d *Decoder) ReceiveFrame() (decoder.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.receiveErr != nil {
		err := d.receiveErr
		d.receiveErr = nil
		return nil, err
	}

	if len(d.pending) == 0 {
		return nil, decoder.ErrNotReady
	}

	if d.countdown > 0 {
		d.countdown--
		return nil, decoder.ErrNotReady
	}
	d.countdown = d.latency

	pkt := d.pending[0]
	d.pending = d.pending[1:]
	d.frames++

	sizes := frame.I420PlaneSizes(d.width, d.height)
	var planes [frame.NumPlanes][]byte
	for i, size := range sizes {
		planes[i] = make([]byte, size)
	}
	copy(planes[0], pkt)
	for i := range planes[1] {
		planes[1][i] = 0x80
	}
	for i := range planes[2] {
		planes[2][i] = 0x80
	}

	return &scriptedFrame{
		d:       d,
		planes:  planes,
		strides: [frame.NumPlanes]int{d.width, d.width / 2, d.width / 2},
		missing: d.missingPlane,
	}, nil
}

func (d *Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

type scriptedFrame struct {
	d       *Decoder
	planes  [frame.NumPlanes][]byte
	strides [frame.NumPlanes]int
	missing int
}

func (f *scriptedFrame) Plane(i int) []byte {
	if i == f.missing {
		return nil
	}
	return f.planes[i]
}

func (f *scriptedFrame) Stride(i int) int {
	return f.strides[i]
}

func (f *scriptedFrame) Release() {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	f.d.releases++
}
