package settingsRepo

import (
	"context"

	"servicehub/models"
)

// SettingsRepository stores the single platform settings document.
type SettingsRepository interface {
	// Get returns repository.ErrNotFound until the first Save.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}
