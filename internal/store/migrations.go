package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Predictions table - one row per /predict or websocket request
		`CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			request_id TEXT NOT NULL DEFAULT '',
			camera_type TEXT NOT NULL,
			caption TEXT NOT NULL DEFAULT '',
			hand_detected INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			latency_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_caption ON predictions(caption)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
