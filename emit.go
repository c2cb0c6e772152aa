package videopipe

import (
	"sync"

	"github.com/pion/videopipe/pkg/frame"
)

// emitter fans a decoded frame out to the registered handlers. Delivery is
// synchronous from the decode loop's goroutine; handlers that block delay
// every subsequent frame, so consumers needing to do real work should hand
// the frame off to their own goroutine.
type emitter struct {
	mu       sync.Mutex
	handlers []func(frame.Decoded)
}

func (e *emitter) subscribe(fn func(frame.Decoded)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, fn)
}

func (e *emitter) emit(f frame.Decoded) {
	e.mu.Lock()
	handlers := make([]func(frame.Decoded), len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn(f)
	}
}
