package monitor

import (
	"time"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// Geometry fixes the two reference lines in frame coordinates and the
// physical distance between them.
type Geometry struct {
	StartLineX float64
	EndLineX   float64
	Distance   float64 // physical separation of the lines
	Margin     float64 // tolerance window around the start line
	UnitFactor float64 // e.g. 2.23694 for m/s to mph
}

// crossing is the in-flight state for one track id between the two lines.
type crossing struct {
	start    time.Time
	hasStart bool
	lastSeen time.Time
}

// Processor turns per-frame tracker observations into detections. The
// crossing map is owned by the single goroutine that calls ProcessFrame and
// is not safe for concurrent use.
type Processor struct {
	geom      Geometry
	crossings map[int]*crossing
}

func NewProcessor(geom Geometry) *Processor {
	return &Processor{
		geom:      geom,
		crossings: make(map[int]*crossing),
	}
}

// ProcessFrame applies one frame's observations and returns the detections
// completed in this frame, in observation order. An empty frame changes no
// state. Observations missing required fields are skipped, never fatal.
//
// The start line uses a symmetric ±margin window because a fast object may
// be sampled only once near the line; the end line is a strict one-sided
// threshold so an object lingering past it cannot re-trigger.
func (p *Processor) ProcessFrame(observations []models.Observation, now time.Time) []*models.Detection {
	var detections []*models.Detection

	for _, obs := range observations {
		if !obs.Valid() {
			continue
		}

		c, ok := p.crossings[obs.TrackID]
		if !ok {
			c = &crossing{}
			p.crossings[obs.TrackID] = c
		}
		c.lastSeen = now

		if !c.hasStart &&
			obs.X >= p.geom.StartLineX-p.geom.Margin &&
			obs.X <= p.geom.StartLineX+p.geom.Margin {
			c.start = now
			c.hasStart = true
		}

		if c.hasStart && obs.X > p.geom.EndLineX {
			speed := Estimate(c.start, now, p.geom.Distance, p.geom.UnitFactor)
			detections = append(detections,
				models.NewDetection(obs.TrackID, obs.Label, obs.Confidence, now, speed))

			// Emitted exactly once per completed crossing: the record is
			// gone, so replaying the same frame cannot re-trigger. A later
			// re-appearance of the id starts a fresh record.
			delete(p.crossings, obs.TrackID)
		}
	}

	return detections
}

// Pending reports how many crossing records are currently in flight.
func (p *Processor) Pending() int {
	return len(p.crossings)
}

// EvictStale drops crossing records not observed within maxAge. Tracks lost
// before the end line otherwise accumulate forever; eviction is opt-in so
// the baseline retention behavior stays observable. Returns the number of
// records removed.
func (p *Processor) EvictStale(now time.Time, maxAge time.Duration) int {
	evicted := 0
	for id, c := range p.crossings {
		if now.Sub(c.lastSeen) > maxAge {
			delete(p.crossings, id)
			evicted++
		}
	}
	return evicted
}
