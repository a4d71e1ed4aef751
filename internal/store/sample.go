package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayusman/rangoli/internal/classifier"
	"github.com/ayusman/rangoli/internal/tracker"
)

// Sample is one recorded hand pose with its ground-truth label.
type Sample struct {
	ID        int64           `json:"id"`
	BatchID   string          `json:"batch_id"`
	Label     string          `json:"label"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// TrainingRecord is the on-disk shape the training pipeline consumes:
// the raw landmarks plus their flattened 63-float feature vector.
type TrainingRecord struct {
	Label     string            `json:"label"`
	Landmarks []tracker.Point3D `json:"landmarks"`
	Features  []float64         `json:"features"`
}

// SampleRepository provides CRUD operations for recorded samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create records a batch of poses under one label in a single
// transaction and returns the number of samples written.
func (r *SampleRepository) Create(batchID, label string, poses []tracker.HandPose) (int, error) {
	if len(poses) == 0 {
		return 0, fmt.Errorf("no poses provided")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO samples (batch_id, label, data) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := range poses {
		record := TrainingRecord{
			Label:     label,
			Landmarks: poses[i].Points[:],
			Features:  classifier.PoseFeatures(&poses[i]),
		}
		data, err := json.Marshal(record)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.Exec(batchID, label, string(data)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(poses), nil
}

// List retrieves samples, optionally filtered by label. An empty label
// returns everything.
func (r *SampleRepository) List(label string) ([]Sample, error) {
	query := `SELECT id, batch_id, label, data, created_at FROM samples ORDER BY id`
	args := []any{}
	if label != "" {
		query = `SELECT id, batch_id, label, data, created_at FROM samples WHERE label = ? ORDER BY id`
		args = append(args, label)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var data string
		if err := rows.Scan(&s.ID, &s.BatchID, &s.Label, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Data = json.RawMessage(data)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// CountByLabel returns how many samples exist per label.
func (r *SampleRepository) CountByLabel() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM samples GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// ExportTraining returns every sample decoded into the shape the
// training pipeline reads.
func (r *SampleRepository) ExportTraining() ([]TrainingRecord, error) {
	samples, err := r.List("")
	if err != nil {
		return nil, err
	}

	records := make([]TrainingRecord, 0, len(samples))
	for _, s := range samples {
		var record TrainingRecord
		if err := json.Unmarshal(s.Data, &record); err != nil {
			return nil, fmt.Errorf("sample %d: %w", s.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteBatch removes every sample recorded under one batch ID.
func (r *SampleRepository) DeleteBatch(batchID string) error {
	result, err := r.db.Exec(`DELETE FROM samples WHERE batch_id = ?`, batchID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
