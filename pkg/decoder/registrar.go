package decoder

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/pion/videopipe/pkg/frame"
)

var (
	buildersMu sync.Mutex
	builders   = make(map[frame.Codec]Builder)
)

// Register installs a decoder builder for a codec kind, replacing any
// previous registration. Decoder packages call this from init so that a
// blank import is enough to make a codec available.
func Register(codec frame.Codec, b Builder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()

	builders[codec] = b
}

// Build constructs a decoder for the codec kind.
func Build(codec frame.Codec) (Decoder, error) {
	buildersMu.Lock()
	b, ok := builders[codec]
	buildersMu.Unlock()

	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "%s", codec)
	}

	return b()
}
