package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

// SessionStats accumulates running totals for the console summary. Owned by
// the monitoring loop; not safe for concurrent use.
type SessionStats struct {
	StartedAt     time.Time
	Total         int
	ByType        map[string]int
	LastCondition string
	LastDetection *models.Detection
}

func NewSessionStats(startedAt time.Time) *SessionStats {
	return &SessionStats{
		StartedAt:     startedAt,
		ByType:        make(map[string]int),
		LastCondition: "Unknown",
	}
}

func (s *SessionStats) Record(d *models.Detection) {
	s.Total++
	s.ByType[d.VehicleType]++
	s.LastDetection = d
	if d.Weather != "" {
		s.LastCondition = d.Weather
	}
}

// Render writes the session summary block.
func (s *SessionStats) Render(w io.Writer, now time.Time) {
	rule := strings.Repeat("=", 50)
	runtime := now.Sub(s.StartedAt).Truncate(time.Second)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  TRAFFIC MONITOR - RUNTIME: %s\n", runtime)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Weather: %s\n", s.LastCondition)
	fmt.Fprintf(w, "  Total vehicles detected: %d\n", s.Total)

	if s.Total > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintln(w, "  VEHICLE BREAKDOWN:")

		types := make([]string, 0, len(s.ByType))
		for vtype := range s.ByType {
			types = append(types, vtype)
		}
		sort.Strings(types)

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		for _, vtype := range types {
			count := s.ByType[vtype]
			percentage := float64(count) / float64(s.Total) * 100
			fmt.Fprintf(tw, "  %s\t%d\t(%.1f%%)\n", vtype, count, percentage)
		}
		tw.Flush()
	}

	if d := s.LastDetection; d != nil {
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "  Last vehicle: #%d (%s)\n", d.VehicleID, d.VehicleType)
		fmt.Fprintf(w, "  Speed: %.1f\n", d.Speed)
		fmt.Fprintf(w, "  Confidence: %.2f\n", d.Confidence)
	}
	fmt.Fprintln(w, rule)
}
