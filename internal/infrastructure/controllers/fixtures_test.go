//go:build unit

package controllers_test

import (
	"github.com/bugswarm/check-upstream/internal/domain/commands"
	"github.com/bugswarm/check-upstream/internal/domain/entities"
)

func depsResult() *commands.DepsResult {
	return &commands.DepsResult{
		Tag:          entities.Tag{Name: "bugswarm/2", Commit: "b1"},
		Dependencies: []string{"images/ubuntu/scripts/build/install-python.sh"},
		Queries:      []string{".python.version"},
	}
}
