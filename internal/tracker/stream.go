package tracker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// stream decodes one JSON frame record per line from a reader. Lines that
// fail to decode are logged and skipped so a glitching tracker cannot take
// the monitor down.
type stream struct {
	scanner *bufio.Scanner
}

func newStream(r io.Reader) *stream {
	sc := bufio.NewScanner(r)
	// Annotated frame stills can push a line into the megabytes.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &stream{scanner: sc}
}

func (s *stream) next(ctx context.Context) (models.Frame, error) {
	for s.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return models.Frame{}, err
		}

		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var frame models.Frame
		if err := json.Unmarshal(line, &frame); err != nil {
			log.Printf("skipping undecodable tracker line: %v", err)
			continue
		}

		frame.Timestamp = time.Now()
		return frame, nil
	}

	if err := s.scanner.Err(); err != nil {
		return models.Frame{}, fmt.Errorf("failed to read tracker output: %w", err)
	}
	return models.Frame{}, ErrStreamEnded
}
