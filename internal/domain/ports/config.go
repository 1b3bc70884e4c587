package ports

import (
	"context"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// ConfigLoader defines the interface for loading the settings file
type ConfigLoader interface {
	// Load reads propertiesFile relative to workingDir and returns the validated configuration
	Load(ctx context.Context, workingDir, propertiesFile string) (*entities.Config, error)

	// CreateDefaults writes a settings file holding the default configuration
	CreateDefaults(ctx context.Context, path string) error
}
