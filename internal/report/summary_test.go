package report

import (
	"strings"
	"testing"
	"time"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

func TestSessionStats_Record(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	stats := NewSessionStats(base)

	car := models.NewDetection(1, "car", 0.9, base, 31.2)
	car.Weather = "Clear"
	truck := models.NewDetection(2, "truck", 0.8, base.Add(time.Second), 28.0)
	truck.Weather = "Rain"

	stats.Record(car)
	stats.Record(truck)
	stats.Record(models.NewDetection(3, "car", 0.95, base.Add(2*time.Second), 40.0))

	if stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", stats.Total)
	}
	if stats.ByType["car"] != 2 || stats.ByType["truck"] != 1 {
		t.Errorf("Unexpected breakdown: %v", stats.ByType)
	}
	if stats.LastCondition != "Rain" {
		t.Errorf("Expected last condition Rain (weatherless detection must not reset it), got %q", stats.LastCondition)
	}
	if stats.LastDetection.VehicleID != 3 {
		t.Errorf("Expected last detection #3, got #%d", stats.LastDetection.VehicleID)
	}
}

func TestSessionStats_Render(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	stats := NewSessionStats(base)

	d := models.NewDetection(7, "car", 0.92, base.Add(90*time.Second), 33.5)
	d.Weather = "Clouds"
	stats.Record(d)

	var b strings.Builder
	stats.Render(&b, base.Add(2*time.Minute))
	out := b.String()

	for _, want := range []string{
		"RUNTIME: 2m0s",
		"Weather: Clouds",
		"Total vehicles detected: 1",
		"car",
		"(100.0%)",
		"Last vehicle: #7 (car)",
		"Speed: 33.5",
		"Confidence: 0.92",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}

func TestSessionStats_RenderEmpty(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	stats := NewSessionStats(base)

	var b strings.Builder
	stats.Render(&b, base.Add(time.Second))
	out := b.String()

	if !strings.Contains(out, "Total vehicles detected: 0") {
		t.Errorf("Unexpected empty summary:\n%s", out)
	}
	if strings.Contains(out, "VEHICLE BREAKDOWN") {
		t.Errorf("Empty session should have no breakdown:\n%s", out)
	}
}
