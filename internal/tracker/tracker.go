package tracker

import (
	"context"
	"errors"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// ErrStreamEnded is returned by Next once the underlying stream finishes.
var ErrStreamEnded = errors.New("tracker: stream ended")

// Source yields one frame's worth of tracked-object observations at a time.
// Implementations block until the next frame is available. A frame may carry
// zero observations; consumers must tolerate that.
type Source interface {
	Next(ctx context.Context) (models.Frame, error)
	Close() error
}
