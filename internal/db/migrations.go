package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS professionals (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			professional_id TEXT NOT NULL REFERENCES professionals(id),
			client_name     TEXT NOT NULL,
			session_date    DATE NOT NULL,
			session_time    TEXT NOT NULL DEFAULT '',
			duration        TEXT NOT NULL DEFAULT '1h',
			status          TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN (
				'scheduled', 'confirmed', 'done',
				'cancelled', 'cancelled_by_client', 'cancelled_by_professional'
			)),
			notes           TEXT NOT NULL DEFAULT '',
			created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(professional_id, session_date);

		CREATE TABLE IF NOT EXISTS blocks (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			professional_id TEXT NOT NULL REFERENCES professionals(id),
			block_date      DATE NOT NULL,
			start_time      TEXT NOT NULL DEFAULT '',
			end_time        TEXT NOT NULL DEFAULT '',
			full_day        INTEGER NOT NULL DEFAULT 0,
			reason          TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_blocks_day ON blocks(professional_id, block_date);

		CREATE TABLE IF NOT EXISTS custom_slots (
			professional_id TEXT NOT NULL REFERENCES professionals(id),
			slot_date       DATE NOT NULL,
			slot_time       TEXT NOT NULL,
			UNIQUE(professional_id, slot_date, slot_time)
		);

		CREATE TABLE IF NOT EXISTS day_starts (
			professional_id TEXT NOT NULL REFERENCES professionals(id),
			start_date      DATE NOT NULL,
			start_time      TEXT NOT NULL,
			PRIMARY KEY(professional_id, start_date)
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating agenda tables: %w", err)
	}

	return nil
}
