package store

import (
	"database/sql"
	"time"
)

// DefaultRecentLimit is used when Recent is called with a non-positive limit.
const DefaultRecentLimit = 50

// Prediction is one recorded recognition request.
type Prediction struct {
	ID           string
	RequestID    string
	CameraType   string
	Caption      string
	HandDetected bool
	Error        string
	LatencyMs    int64
	CreatedAt    time.Time
}

// CaptionCount is the number of predictions that produced a caption.
type CaptionCount struct {
	Caption string
	Count   int
}

// PredictionRepository provides access to the prediction history.
type PredictionRepository struct {
	db *sql.DB
}

// Predictions returns the prediction repository for this store.
func (s *Store) Predictions() *PredictionRepository {
	return &PredictionRepository{db: s.db}
}

// Create inserts a prediction. CreatedAt is set when zero.
func (r *PredictionRepository) Create(p *Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO predictions (id, request_id, camera_type, caption, hand_detected, error, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.RequestID, p.CameraType, p.Caption, p.HandDetected, p.Error, p.LatencyMs, p.CreatedAt,
	)
	return err
}

// Recent returns up to limit predictions, newest first.
func (r *PredictionRepository) Recent(limit int) ([]*Prediction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := r.db.Query(
		`SELECT id, request_id, camera_type, caption, hand_detected, error, latency_ms, created_at
		 FROM predictions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var predictions []*Prediction
	for rows.Next() {
		p := &Prediction{}
		if err := rows.Scan(&p.ID, &p.RequestID, &p.CameraType, &p.Caption, &p.HandDetected, &p.Error, &p.LatencyMs, &p.CreatedAt); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return predictions, nil
}

// CountByCaption tallies successful predictions per caption, most frequent first.
func (r *PredictionRepository) CountByCaption() ([]CaptionCount, error) {
	rows, err := r.db.Query(
		`SELECT caption, COUNT(*) AS n
		 FROM predictions
		 WHERE error = '' AND caption != ''
		 GROUP BY caption
		 ORDER BY n DESC, caption ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CaptionCount
	for rows.Next() {
		var c CaptionCount
		if err := rows.Scan(&c.Caption, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
