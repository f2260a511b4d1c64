package monitor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/kdimtricp/trafficwatch/internal/frames"
	"github.com/kdimtricp/trafficwatch/internal/models"
	"github.com/kdimtricp/trafficwatch/internal/persist"
	"github.com/kdimtricp/trafficwatch/internal/report"
	"github.com/kdimtricp/trafficwatch/internal/tracker"
)

// ConditionSource supplies the ambient condition attached to outgoing
// detections. The service only attaches whatever string it is given.
type ConditionSource interface {
	Condition(ctx context.Context) string
}

type ServiceConfig struct {
	Source     tracker.Source
	Processor  *Processor
	Queue      *persist.Queue
	Conditions ConditionSource

	// Summary, when set, receives the console session summary after each
	// frame that produced detections.
	Summary io.Writer

	// OnFrame, when set, receives the decoded annotated still for frames
	// that carry one. Decode failures fall back to no frame.
	OnFrame func(image.Image)

	// TrackTTL enables eviction of crossing records for lost tracks. Zero
	// keeps them forever, the baseline behavior.
	TrackTTL time.Duration
}

// Service drives the frame loop: pull observations from the tracker, run
// the crossing processor, attach the ambient condition, hand detections to
// the persistence queue and keep the session summary current. Everything
// here runs on one goroutine; only the queue is shared with the worker.
type Service struct {
	cfg       ServiceConfig
	stats     *report.SessionStats
	lastSweep time.Time
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		cfg:   cfg,
		stats: report.NewSessionStats(time.Now()),
	}
}

// Run consumes frames until the stream ends or ctx is cancelled. Per-frame
// problems are absorbed; only a broken frame source stops the loop.
func (s *Service) Run(ctx context.Context) error {
	for {
		frame, err := s.cfg.Source.Next(ctx)
		if err != nil {
			if errors.Is(err, tracker.ErrStreamEnded) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to read next frame: %w", err)
		}
		s.handleFrame(ctx, frame)
	}
}

func (s *Service) handleFrame(ctx context.Context, frame models.Frame) {
	now := frame.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	detections := s.cfg.Processor.ProcessFrame(frame.Observations, now)

	if len(detections) > 0 {
		condition := "Unknown"
		if s.cfg.Conditions != nil {
			condition = s.cfg.Conditions.Condition(ctx)
		}

		for _, d := range detections {
			d.Weather = condition
			if err := s.cfg.Queue.Enqueue(d); err != nil {
				log.Printf("failed to enqueue detection %s: %v", d.ID, err)
				continue
			}
			s.stats.Record(d)
		}

		if s.cfg.Summary != nil {
			s.stats.Render(s.cfg.Summary, now)
		}
	}

	if s.cfg.OnFrame != nil && frame.AnnotatedB64 != "" {
		img, err := frames.DecodeBase64JPEG(frame.AnnotatedB64)
		if err != nil {
			log.Printf("failed to decode annotated frame %d: %v", frame.Number, err)
		} else {
			s.cfg.OnFrame(img)
		}
	}

	if s.cfg.TrackTTL > 0 {
		if s.lastSweep.IsZero() {
			s.lastSweep = now
		}
		if now.Sub(s.lastSweep) >= s.cfg.TrackTTL {
			if n := s.cfg.Processor.EvictStale(now, s.cfg.TrackTTL); n > 0 {
				log.Printf("evicted %d stale crossing records", n)
			}
			s.lastSweep = now
		}
	}
}

// Stats exposes the running session totals, for the final report on
// shutdown.
func (s *Service) Stats() *report.SessionStats {
	return s.stats
}
