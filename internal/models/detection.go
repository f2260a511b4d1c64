package models

import (
	"time"

	"github.com/google/uuid"
)

// Detection is one finalized speed measurement, ready for persistence.
type Detection struct {
	ID          string    `json:"id"`
	VehicleID   int       `json:"vehicle_id"`
	VehicleType string    `json:"vehicle_type"`
	Confidence  float64   `json:"confidence"`
	Speed       float64   `json:"speed"`
	Weather     string    `json:"weather,omitempty"`
	DetectedAt  time.Time `json:"detected_at"`
}

func NewDetection(vehicleID int, vehicleType string, confidence float64, detectedAt time.Time, speed float64) *Detection {
	return &Detection{
		ID:          uuid.New().String(),
		VehicleID:   vehicleID,
		VehicleType: vehicleType,
		Confidence:  confidence,
		Speed:       speed,
		DetectedAt:  detectedAt,
	}
}
