package frame

// Format identifies the pixel layout of a decoded frame.
type Format string

const (
	// FormatI420 https://www.fourcc.org/pixel-format/yuv-i420/
	FormatI420 Format = "I420"
	// FormatI444 is a YUV format without chroma sub-sampling
	FormatI444 Format = "I444"
	// FormatRGB is an interleaved RGB layout described by an RGBLayout
	FormatRGB Format = "RGB"
)

// Codec identifies the payload carried by a compressed stream. RawYUV and
// RawRGB streams carry uncompressed pixels but still flow through the decode
// pipeline so that consumers see a single frame source.
type Codec string

const (
	CodecH264   Codec = "H264"
	CodecRawYUV Codec = "RawYUV"
	CodecRawRGB Codec = "RawRGB"
)
