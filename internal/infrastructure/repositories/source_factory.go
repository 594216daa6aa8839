package repositories

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	domainRepos "github.com/bugswarm/check-upstream/internal/domain/repositories"
)

// SourceFactory opens the version-control data source for a checkout directory.
// The repository handle is created per run and passed explicitly to every command.
type SourceFactory func(repoDir string, upstream entities.UpstreamConfig) (domainRepos.SourceRepository, error)
