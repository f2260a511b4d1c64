package models

import "time"

// Observation is one tracked object in one frame, as reported by the
// external tracker. The track id stays stable for a physical object across
// consecutive frames but is not guaranteed unique forever.
type Observation struct {
	TrackID    int     `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Label      string  `json:"label"`
	Confidence float64 `json:"conf"`
}

// Valid reports whether the observation carries the fields the crossing
// logic needs. Invalid observations are skipped, never fatal.
func (o Observation) Valid() bool {
	return o.TrackID > 0 && o.Label != "" && o.Confidence >= 0 && o.Confidence <= 1
}

// Frame is one frame's worth of observations plus an optional annotated
// still from the tracker.
type Frame struct {
	Number       int           `json:"frame"`
	Observations []Observation `json:"objects"`
	AnnotatedB64 string        `json:"annotated_b64,omitempty"`

	// Timestamp is stamped by the receiving side, not the tracker.
	Timestamp time.Time `json:"-"`
}
