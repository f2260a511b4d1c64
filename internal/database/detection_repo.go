package database

import (
	"context"
	"fmt"

	"github.com/kdimtricp/trafficwatch/internal/models"
)

type DetectionRepository struct {
	db *DB
}

func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Insert writes one detection row. Called synchronously by the persistence
// worker; the store may be slow, so nothing on the frame path calls this
// directly.
func (r *DetectionRepository) Insert(ctx context.Context, d *models.Detection) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (id, vehicle_id, vehicle_type, confidence, speed, weather, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`, r.db.table)

	_, err := r.db.conn.ExecContext(ctx, r.db.rebind(query),
		d.ID, d.VehicleID, d.VehicleType, d.Confidence, d.Speed, d.Weather, d.DetectedAt)
	if err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}
	return nil
}

func (r *DetectionRepository) ListRecent(ctx context.Context, limit int) ([]models.Detection, error) {
	if limit < 1 {
		limit = 20
	}

	query := fmt.Sprintf(
		`SELECT id, vehicle_id, vehicle_type, confidence, speed, weather, detected_at
		 FROM %s ORDER BY detected_at DESC LIMIT ?`, r.db.table)

	rows, err := r.db.conn.QueryContext(ctx, r.db.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	defer rows.Close()

	detections := []models.Detection{}
	for rows.Next() {
		var d models.Detection
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.VehicleType, &d.Confidence, &d.Speed, &d.Weather, &d.DetectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}

	return detections, nil
}

// TypeStats aggregates stored detections for one vehicle type.
type TypeStats struct {
	VehicleType string  `json:"vehicle_type"`
	Count       int     `json:"count"`
	AvgSpeed    float64 `json:"avg_speed"`
	MaxSpeed    float64 `json:"max_speed"`
}

func (r *DetectionRepository) Stats(ctx context.Context) ([]TypeStats, error) {
	query := fmt.Sprintf(
		`SELECT vehicle_type, COUNT(*), AVG(speed), MAX(speed)
		 FROM %s GROUP BY vehicle_type ORDER BY COUNT(*) DESC, vehicle_type`, r.db.table)

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate detections: %w", err)
	}
	defer rows.Close()

	stats := []TypeStats{}
	for rows.Next() {
		var s TypeStats
		if err := rows.Scan(&s.VehicleType, &s.Count, &s.AvgSpeed, &s.MaxSpeed); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	return stats, nil
}
