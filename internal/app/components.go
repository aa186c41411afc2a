package app

import "go.trai.ch/workbench/internal/core/ports"

// Components holds the resolved application services for main.
type Components struct {
	App    *App
	Logger ports.Logger
}
