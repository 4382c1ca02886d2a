package sync

import (
	"encoding/json"
	"fmt"

	"Tally/models"
	"Tally/models/postgres"

	"gorm.io/gorm"
)

// SyncManager mirrors the live session snapshot into PostgreSQL. Strictly
// best-effort reporting storage: the Redis snapshot is what reconnects and
// restarts are served from, the archive only feeds the status surface.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchiveSessions upserts one row per live session. Rows for sessions that
// already aged out of the store are left behind on purpose, that history is
// the point of the archive.
func (sm *SyncManager) ArchiveSessions(sessions map[string]*models.Session) error {
	for code, sess := range sessions {
		players, err := json.Marshal(sess.Players)
		if err != nil {
			return fmt.Errorf("error marshaling players for session %s: %v", code, err)
		}

		query := `
			INSERT INTO session_records (code, name, host_player_id, players, created_at, is_active, archived_at)
			VALUES (?, ?, ?, ?, ?, ?, NOW())
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				host_player_id = EXCLUDED.host_player_id,
				players = EXCLUDED.players,
				is_active = EXCLUDED.is_active,
				archived_at = NOW()
		`

		err = sm.db.Exec(query,
			code,
			sess.Name,
			sess.HostPlayerID,
			players,
			sess.CreatedAt,
			sess.IsActive).Error

		if err != nil {
			return fmt.Errorf("error archiving session %s in PostgreSQL: %v", code, err)
		}
	}

	return nil
}

// ArchivedCount returns how many session rows the archive holds.
func (sm *SyncManager) ArchivedCount() (int64, error) {
	var count int64
	if err := sm.db.Model(&postgres.SessionRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting archived sessions: %v", err)
	}
	return count, nil
}
