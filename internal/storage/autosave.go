package storage

import (
	"github.com/julianstephens/summit/internal/logger"
	"github.com/julianstephens/summit/internal/models"
)

// AutoSave persists every snapshot src publishes. A failed write is logged
// and dropped; the in-memory state stays authoritative and the next
// mutation writes the full snapshot again.
func AutoSave(src Subscriber, a *Adapter) (stop func()) {
	return src.Subscribe(func(snap models.Snapshot) {
		if err := a.Save(snap); err != nil {
			logger.Error("Failed to persist snapshot", "backend", a.KV.GetConfigPath(), "error", err)
		}
	})
}
