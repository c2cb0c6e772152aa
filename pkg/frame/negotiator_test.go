package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiateYUVCodecs(t *testing.T) {
	for _, codec := range []Codec{CodecH264, CodecRawYUV} {
		n, err := Negotiate(Stream{Codec: codec, Width: 640, Height: 480, FrameRate: 30})
		require.NoError(t, err, codec)

		assert.Equal(t, PixelPair{Source: FormatI420, Target: FormatI420}, n.Pair())
		assert.False(t, n.Pair().NeedsResample())
		assert.Equal(t, StateInitialized, n.State())
	}
}

func TestNegotiateRawRGBStoresLayout(t *testing.T) {
	layout := &RGBLayout{
		BitsPerPixel:  32,
		BytesPerPixel: 4,
		RedMask:       0x00ff0000,
		GreenMask:     0x0000ff00,
		BlueMask:      0x000000ff,
	}
	n, err := Negotiate(Stream{Codec: CodecRawRGB, Width: 640, Height: 480, FrameRate: 30, RGB: layout})
	require.NoError(t, err)

	assert.Equal(t, layout, n.Stream().RGB)
	assert.Equal(t, PixelPair{Source: FormatRGB, Target: FormatRGB}, n.Pair())
}

func TestNegotiateRawRGBWithoutLayout(t *testing.T) {
	_, err := Negotiate(Stream{Codec: CodecRawRGB, Width: 640, Height: 480})
	assert.ErrorIs(t, err, ErrUnsupportedCodec)
}

func TestNegotiateUnknownCodec(t *testing.T) {
	_, err := Negotiate(Stream{Codec: Codec("AV2"), Width: 640, Height: 480})
	assert.ErrorIs(t, err, ErrUnsupportedCodec)
}

func TestOverwriteTarget(t *testing.T) {
	n, err := Negotiate(Stream{Codec: CodecH264, Width: 640, Height: 480, FrameRate: 30})
	require.NoError(t, err)

	require.NoError(t, n.OverwriteTarget(FormatI444))
	assert.Equal(t, PixelPair{Source: FormatI420, Target: FormatI444}, n.Pair())
	assert.True(t, n.Pair().NeedsResample())

	// Writing the source format back clears the resample requirement.
	require.NoError(t, n.OverwriteTarget(FormatI420))
	assert.False(t, n.Pair().NeedsResample())
}

func TestOverwriteTargetAfterContextCreated(t *testing.T) {
	n, err := Negotiate(Stream{Codec: CodecH264, Width: 640, Height: 480, FrameRate: 30})
	require.NoError(t, err)
	require.NoError(t, n.CreateContext(func() error { return nil }))

	err = n.OverwriteTarget(FormatI444)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, n.Pair().NeedsResample())
}

func TestCreateContextOnce(t *testing.T) {
	n, err := Negotiate(Stream{Codec: CodecRawYUV, Width: 320, Height: 240, FrameRate: 15})
	require.NoError(t, err)

	require.NoError(t, n.CreateContext(func() error { return nil }))
	assert.Equal(t, StateContextCreated, n.State())

	err = n.CreateContext(func() error { return nil })
	assert.ErrorIs(t, err, ErrInvalidState)
}
