// Package staging holds uploaded document bytes for the span of one request.
// A staged handle never outlives its request: Discard runs on every exit
// path and removes the underlying object exactly once.
package staging

import (
	"context"
	"io"
	"sync"

	"cvsec-backend/internal/shared/telemetry"
)

// Store stages document bytes into transient storage.
type Store interface {
	Stage(ctx context.Context, data []byte) (*Handle, error)
}

// backend is the minimal surface a staging backend provides for a handle.
type backend interface {
	open(ctx context.Context, key string) (io.ReadCloser, error)
	remove(ctx context.Context, key string) error
}

// Handle references one staged document. It is exclusively owned by the
// request that staged it.
type Handle struct {
	Key  string
	Size int64

	store backend
	once  sync.Once
}

// Open returns a reader over the staged bytes.
func (h *Handle) Open(ctx context.Context) (io.ReadCloser, error) {
	return h.store.open(ctx, h.Key)
}

// Discard removes the staged object. It runs at most once; later calls are
// no-ops. Removal failures are logged and never escalated: the request's
// primary outcome is already decided by the time cleanup runs.
func (h *Handle) Discard(ctx context.Context) {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if err := h.store.remove(ctx, h.Key); err != nil {
			telemetry.Warn("staging.discard_failed", map[string]any{
				"key":   h.Key,
				"error": err.Error(),
			})
		}
	})
}
