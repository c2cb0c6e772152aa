package ffmpeg

import (
	"errors"
)

var (
	errCodecNotFound         = errors.New("ffmpeg: codec not found")
	errFailedToCreateCtx     = errors.New("ffmpeg: failed to allocate codec context")
	errFailedToOpenCtx       = errors.New("ffmpeg: failed to open codec context")
	errFailedToAllocFrame    = errors.New("ffmpeg: failed to allocate frame")
	errFailedToAllocPacket   = errors.New("ffmpeg: failed to allocate packet")
	errUnexpectedPixelFormat = errors.New("ffmpeg: unexpected output pixel format")
	errClosed                = errors.New("ffmpeg: decoder is closed")
)
