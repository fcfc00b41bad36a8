package services

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/solarent/beacon/pkg/internal/database"
)

// DoAutoDatabaseCleanup hard-deletes rows that have been soft-deleted for
// over an hour. Deleted messages vanish from every read immediately; this
// job just reclaims the storage.
func DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-60 * time.Minute)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().Delete(model, "deleted_at IS NOT NULL AND deleted_at <= ?", deadline)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
