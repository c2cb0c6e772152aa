package videopipe

import (
	"github.com/pkg/errors"

	"github.com/pion/videopipe/pkg/decoder"
	"github.com/pion/videopipe/pkg/frame"
)

// extract copies the planes of a decoder-owned frame into freshly allocated
// buffers so the result can outlive the decoder's internal state. The source
// frame is released exactly once on every path, success or failure.
func extract(src decoder.Frame, pos uint64, needsResample bool) (frame.Decoded, error) {
	defer src.Release()

	if needsResample {
		// Resampling during extraction is a known extension point, not a
		// silent no-op.
		return frame.Decoded{}, decoder.ErrResampleUnsupported
	}

	out := frame.Decoded{Position: pos}
	for i := 0; i < frame.NumPlanes; i++ {
		plane := src.Plane(i)
		if plane == nil {
			return frame.Decoded{}, errors.Wrapf(decoder.ErrInvalidFrameData, "plane %d is missing", i)
		}

		buf := make([]byte, len(plane))
		copy(buf, plane)
		out.Planes[i] = buf
		out.Strides[i] = src.Stride(i)
	}

	return out, nil
}
