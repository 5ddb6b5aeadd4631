// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/packager/internal/adapters/archive"
	_ "go.trai.ch/packager/internal/adapters/config"
	_ "go.trai.ch/packager/internal/adapters/fs"
	_ "go.trai.ch/packager/internal/adapters/inspector"
	_ "go.trai.ch/packager/internal/adapters/logger"
	_ "go.trai.ch/packager/internal/adapters/manifest"
	_ "go.trai.ch/packager/internal/adapters/policy"
	_ "go.trai.ch/packager/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/packager/internal/app"
	_ "go.trai.ch/packager/internal/engine/pipeline"
)
