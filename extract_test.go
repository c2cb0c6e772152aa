package videopipe

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/videopipe/pkg/decoder"
	"github.com/pion/videopipe/pkg/frame"
)

// fakeFrame is a decoder-owned frame stand-in that records releases.
type fakeFrame struct {
	planes   [frame.NumPlanes][]byte
	strides  [frame.NumPlanes]int
	releases int
}

func newFakeFrame() *fakeFrame {
	return &fakeFrame{
		planes: [frame.NumPlanes][]byte{
			{0x01, 0x02, 0x03, 0x04},
			{0x81, 0x82},
			{0x91, 0x92},
		},
		strides: [frame.NumPlanes]int{2, 1, 1},
	}
}

func (f *fakeFrame) Plane(i int) []byte { return f.planes[i] }
func (f *fakeFrame) Stride(i int) int   { return f.strides[i] }
func (f *fakeFrame) Release()           { f.releases++ }

func TestExtractCopiesPlanes(t *testing.T) {
	src := newFakeFrame()

	out, err := extract(src, 7, false)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), out.Position)
	for i := 0; i < frame.NumPlanes; i++ {
		assert.Equal(t, src.planes[i], out.Planes[i], "plane %d", i)
		assert.Equal(t, src.strides[i], out.Strides[i], "stride %d", i)
	}
	assert.Equal(t, 1, src.releases)

	// The copies must not alias decoder memory.
	src.planes[0][0] = 0xff
	assert.EqualValues(t, 0x01, out.Planes[0][0])
}

func TestExtractResampleUnsupported(t *testing.T) {
	src := newFakeFrame()

	out, err := extract(src, 0, true)
	assert.ErrorIs(t, err, decoder.ErrResampleUnsupported)
	assert.Equal(t, frame.Decoded{}, out, "no partial plane data")
	assert.Equal(t, 1, src.releases, "frame must be released on the failure path")
}

func TestExtractMissingPlane(t *testing.T) {
	src := newFakeFrame()
	src.planes[1] = nil

	out, err := extract(src, 0, false)
	assert.ErrorIs(t, err, decoder.ErrInvalidFrameData)
	assert.Equal(t, frame.Decoded{}, out, "no partial plane data")
	assert.Equal(t, 1, src.releases, "frame must be released exactly once")
}

func TestExtractWrapsPlaneIndex(t *testing.T) {
	src := newFakeFrame()
	src.planes[2] = nil

	_, err := extract(src, 0, false)
	require.Error(t, err)
	assert.Contains(t, errors.Cause(err).Error(), "invalid frame data")
	assert.Contains(t, err.Error(), "plane 2")
}
