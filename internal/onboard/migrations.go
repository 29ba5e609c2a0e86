package onboard

import (
	"database/sql"

	"github.com/HerbHall/gangway/internal/store"
)

// Migrations returns the onboarding task log schema.
func Migrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "create onboarding tasks table",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS onboarding_tasks (
						id TEXT PRIMARY KEY,
						ip_address TEXT NOT NULL,
						port INTEGER NOT NULL DEFAULT 22,
						site TEXT NOT NULL,
						platform TEXT DEFAULT '',
						role TEXT DEFAULT '',
						status TEXT NOT NULL,
						fail_reason TEXT DEFAULT '',
						message TEXT DEFAULT '',
						device_id INTEGER DEFAULT 0,
						created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE INDEX IF NOT EXISTS idx_onboarding_tasks_ip ON onboarding_tasks(ip_address)`,
					`CREATE INDEX IF NOT EXISTS idx_onboarding_tasks_status ON onboarding_tasks(status)`,
				}
				for _, stmt := range stmts {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
