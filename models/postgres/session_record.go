package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'SessionRecord' is the archived form of a live session, mirrored into
 * PostgreSQL best-effort on every snapshot save. The players list is kept
 * as a JSON column since the archive is read back for reporting only,
 * never rehydrated into gameplay.
 */
type SessionRecord struct {
	Code         string         `gorm:"primaryKey;size:6;not null"`
	Name         string         `gorm:"size:100"`
	HostPlayerID string         `gorm:"size:36;index:idx_session_records_host"`
	Players      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	IsActive     bool           `gorm:"default:false;index:idx_session_records_active"`
	ArchivedAt   time.Time      `gorm:"autoUpdateTime"`
}
