package decoder

import (
	"github.com/pkg/errors"

	"github.com/pion/videopipe/pkg/frame"
)

func init() {
	Register(frame.CodecRawYUV, func() (Decoder, error) {
		return &yuvPassthrough{}, nil
	})
}

// yuvPassthrough "decodes" raw planar 4:2:0 payloads by splitting each packet
// into its Y, Cb and Cr planes. Submission and retrieval are decoupled the
// same way they are for a real codec, so the pipeline treats both alike.
type yuvPassthrough struct {
	width   int
	height  int
	pending [][]byte
	closed  bool
}

func (d *yuvPassthrough) Configure(s frame.Stream) error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("invalid frame dimensions %dx%d", s.Width, s.Height)
	}
	d.width = s.Width
	d.height = s.Height
	return nil
}

func (d *yuvPassthrough) Submit(pkt []byte) error {
	if d.closed {
		return errors.New("decoder is closed")
	}
	if want := frame.I420Size(d.width, d.height); len(pkt) != want {
		return errors.Wrapf(ErrInvalidFrameData, "payload length (%d) doesn't match %dx%d I420 (%d)",
			len(pkt), d.width, d.height, want)
	}

	d.pending = append(d.pending, pkt)
	return nil
}

func (d *yuvPassthrough) ReceiveFrame() (Frame, error) {
	if len(d.pending) == 0 {
		return nil, ErrNotReady
	}

	pkt := d.pending[0]
	d.pending = d.pending[1:]

	yi := d.width * d.height
	cbi := yi + d.width*d.height/4
	cri := cbi + d.width*d.height/4

	return &yuvFrame{
		planes:  [frame.NumPlanes][]byte{pkt[:yi], pkt[yi:cbi], pkt[cbi:cri]},
		strides: [frame.NumPlanes]int{d.width, d.width / 2, d.width / 2},
	}, nil
}

func (d *yuvPassthrough) Close() error {
	d.pending = nil
	d.closed = true
	return nil
}

type yuvFrame struct {
	planes  [frame.NumPlanes][]byte
	strides [frame.NumPlanes]int
}

func (f *yuvFrame) Plane(i int) []byte {
	return f.planes[i]
}

func (f *yuvFrame) Stride(i int) int {
	return f.strides[i]
}

func (f *yuvFrame) Release() {
	for i := range f.planes {
		f.planes[i] = nil
	}
}
