package ports

import (
	"context"
	"io"

	"go.trai.ch/workbench/internal/core/domain"
)

// Executor runs external processes on behalf of builders.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd and waits for it to finish, streaming its output to stdout and stderr.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
