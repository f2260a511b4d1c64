package tracker

import (
	"context"
	"fmt"
	"os"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// Replay reads recorded tracker output from a file, one JSON frame record
// per line. Useful for running the monitor against a captured session
// without a live detector.
type Replay struct {
	file   *os.File
	stream *stream
}

func NewReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	return &Replay{file: f, stream: newStream(f)}, nil
}

func (r *Replay) Next(ctx context.Context) (models.Frame, error) {
	return r.stream.next(ctx)
}

func (r *Replay) Close() error {
	return r.file.Close()
}
