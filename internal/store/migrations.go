package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Custom animation clips, one per (user, gesture).
		`CREATE TABLE IF NOT EXISTS user_animations (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			gesture TEXT NOT NULL CHECK(gesture IN ('like', 'dislike', 'heart')),
			path TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, gesture)
		)`,

		// The custom emoji each clip was resolved from, so the bot layer
		// can show the user what is currently bound to a gesture.
		`CREATE TABLE IF NOT EXISTS user_emoji (
			user_id INTEGER NOT NULL,
			gesture TEXT NOT NULL CHECK(gesture IN ('like', 'dislike', 'heart')),
			emoji_id TEXT NOT NULL,
			PRIMARY KEY (user_id, gesture)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_user_animations_user_id ON user_animations(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
