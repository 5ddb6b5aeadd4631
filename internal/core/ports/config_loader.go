package ports

import "go.trai.ch/packager/internal/core/domain"

// ConfigLoader defines the interface for loading the packaging configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads configPath, or the default file in root when empty, over the defaults.
	Load(root, configPath string) (domain.Config, error)
}
