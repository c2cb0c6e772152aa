// Package ffmpeg brings libavcodec's H.264 decoding to videopipe. This
// package requires ffmpeg headers and libraries to be built. For more
// information, see https://github.com/asticode/go-astiav?tab=readme-ov-file#install-ffmpeg-from-source.
//
// Importing the package registers the decoder:
//
//	import _ "github.com/pion/videopipe/pkg/decoder/ffmpeg"
package ffmpeg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/asticode/go-astiav"

	"github.com/pion/videopipe/pkg/decoder"
	"github.com/pion/videopipe/pkg/frame"
)

func init() {
	decoder.Register(frame.CodecH264, func() (decoder.Decoder, error) {
		return &h264Decoder{}, nil
	})
}

type h264Decoder struct {
	codecCtx *astiav.CodecContext
	avFrame  *astiav.Frame
	packet   *astiav.Packet

	mu     sync.Mutex
	closed bool
}

func (d *h264Decoder) Configure(s frame.Stream) error {
	astiav.SetLogLevel(astiav.LogLevel(astiav.LogLevelWarning))

	codec := astiav.FindDecoder(astiav.CodecIDH264)
	if codec == nil {
		return errCodecNotFound
	}

	codecCtx := astiav.AllocCodecContext(codec)
	if codecCtx == nil {
		return errFailedToCreateCtx
	}

	codecCtx.SetWidth(s.Width)
	codecCtx.SetHeight(s.Height)
	codecCtx.SetTimeBase(astiav.NewRational(1, int(s.FrameRate)))
	codecCtx.SetPixelFormat(astiav.PixelFormatYuv420P)

	if err := codecCtx.Open(codec, nil); err != nil {
		codecCtx.Free()
		return errFailedToOpenCtx
	}

	avFrame := astiav.AllocFrame()
	if avFrame == nil {
		codecCtx.Free()
		return errFailedToAllocFrame
	}

	packet := astiav.AllocPacket()
	if packet == nil {
		avFrame.Free()
		codecCtx.Free()
		return errFailedToAllocPacket
	}

	d.codecCtx = codecCtx
	d.avFrame = avFrame
	d.packet = packet
	return nil
}

func (d *h264Decoder) Submit(pkt []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errClosed
	}

	if err := d.packet.FromData(pkt); err != nil {
		return err
	}
	defer d.packet.Unref()

	return d.codecCtx.SendPacket(d.packet)
}

func (d *h264Decoder) ReceiveFrame() (decoder.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, errClosed
	}

	if err := d.codecCtx.ReceiveFrame(d.avFrame); err != nil {
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return nil, decoder.ErrNotReady
		}
		return nil, err
	}

	if pf := d.avFrame.PixelFormat(); pf != astiav.PixelFormatYuv420P {
		d.avFrame.Unref()
		return nil, fmt.Errorf("%w: %s", errUnexpectedPixelFormat, pf)
	}

	// Copy the image out with alignment 1, so the buffer holds the three
	// planes back to back with tightly packed rows.
	buf, err := d.avFrame.Data().Bytes(1)
	if err != nil {
		d.avFrame.Unref()
		return nil, err
	}

	width := d.avFrame.Width()
	height := d.avFrame.Height()
	yi := width * height
	ci := width * height / 4
	if len(buf) < yi+2*ci {
		d.avFrame.Unref()
		return nil, fmt.Errorf("%w: buffer length (%d) less than expected (%d)",
			decoder.ErrInvalidFrameData, len(buf), yi+2*ci)
	}

	return &h264Frame{
		owner:   d.avFrame,
		planes:  [frame.NumPlanes][]byte{buf[:yi], buf[yi : yi+ci], buf[yi+ci : yi+2*ci]},
		strides: [frame.NumPlanes]int{width, width / 2, width / 2},
	}, nil
}

func (d *h264Decoder) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	if d.packet != nil {
		d.packet.Free()
	}
	if d.avFrame != nil {
		d.avFrame.Free()
	}
	if d.codecCtx != nil {
		d.codecCtx.Free()
	}

	d.closed = true
	return nil
}

type h264Frame struct {
	owner   *astiav.Frame
	planes  [frame.NumPlanes][]byte
	strides [frame.NumPlanes]int
}

func (f *h264Frame) Plane(i int) []byte {
	return f.planes[i]
}

func (f *h264Frame) Stride(i int) int {
	return f.strides[i]
}

func (f *h264Frame) Release() {
	f.owner.Unref()
}
