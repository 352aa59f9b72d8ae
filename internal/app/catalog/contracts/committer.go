package contracts

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Committer applies the mutations collected by a usecase.
// *committer.Committer is the production implementation.
type Committer interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, guard committer.VersionGuard, plan *committer.CommitPlan) error
}
