// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/workbench/internal/adapters/builders/plugins"
	_ "go.trai.ch/workbench/internal/adapters/cas"
	_ "go.trai.ch/workbench/internal/adapters/config"
	_ "go.trai.ch/workbench/internal/adapters/fs"
	_ "go.trai.ch/workbench/internal/adapters/logger"
	_ "go.trai.ch/workbench/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/workbench/internal/app"
	_ "go.trai.ch/workbench/internal/engine/events"
)
