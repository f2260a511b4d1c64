package tracker

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// Subprocess runs an external detector/tracker process and consumes one JSON
// frame record per stdout line. The inference side stays a separate process
// with its own runtime; this side only reads its output.
type Subprocess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stream *stream
}

func NewSubprocess(ctx context.Context, command string, args ...string) (*Subprocess, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("tracker command not found in PATH: %w", err)
	}
	log.Printf("Starting tracker: %s", path)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start tracker: %w", err)
	}

	return &Subprocess{
		cmd:    cmd,
		stdout: stdout,
		stream: newStream(stdout),
	}, nil
}

func (s *Subprocess) Next(ctx context.Context) (models.Frame, error) {
	return s.stream.next(ctx)
}

// Close reaps the tracker process. Safe to call after the stream ends; if
// the process is still running it is brought down via its context.
func (s *Subprocess) Close() error {
	s.stdout.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("tracker process exited: %w", err)
	}
	return nil
}
