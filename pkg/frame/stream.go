package frame

// RGBLayout describes an interleaved RGB pixel layout. It is only meaningful
// for CodecRawRGB streams.
type RGBLayout struct {
	BitsPerPixel  int
	BytesPerPixel int
	RedMask       uint32
	GreenMask     uint32
	BlueMask      uint32
}

// Stream describes an incoming video stream. It is immutable once a decode
// context has been created from it.
type Stream struct {
	Codec     Codec
	Width     int
	Height    int
	FrameRate float32

	// RGB carries the pixel layout for CodecRawRGB streams and is nil
	// otherwise.
	RGB *RGBLayout
}
