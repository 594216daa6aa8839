//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

// StubDepsCommand is a stub implementation of commands.Deps.
type StubDepsCommand struct {
	ExecuteCallCount int
	Result           *commands.DepsResult
	ExecuteErr       error
	LastOpts         commands.DepsOptions
}

var _ commands.Deps = (*StubDepsCommand)(nil)

func (s *StubDepsCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.DepsOptions,
) (*commands.DepsResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}
