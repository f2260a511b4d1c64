package monitor

import (
	"testing"
	"time"
)

func TestEstimate(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		elapsed  time.Duration
		distance float64
		factor   float64
		want     float64
	}{
		{
			name:     "17 metres in 1.5s to mph",
			elapsed:  1500 * time.Millisecond,
			distance: 17,
			factor:   2.23694,
			want:     25.4,
		},
		{
			name:     "one second",
			elapsed:  time.Second,
			distance: 17,
			factor:   2.23694,
			want:     38.0,
		},
		{
			name:     "zero elapsed clamps",
			elapsed:  0,
			distance: 17,
			factor:   2.23694,
			want:     0,
		},
		{
			name:     "negative elapsed clamps",
			elapsed:  -time.Second,
			distance: 17,
			factor:   2.23694,
			want:     0,
		},
		{
			name:     "unit factor of one",
			elapsed:  2 * time.Second,
			distance: 10,
			factor:   1,
			want:     5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(base, base.Add(tt.elapsed), tt.distance, tt.factor)
			if got != tt.want {
				t.Errorf("Estimate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimate_OneDecimalRounding(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	// 17 / 3 * 2.23694 = 12.6759...; must round, not truncate
	got := Estimate(base, base.Add(3*time.Second), 17, 2.23694)
	if got != 12.7 {
		t.Errorf("Estimate() = %v, want 12.7", got)
	}
}
