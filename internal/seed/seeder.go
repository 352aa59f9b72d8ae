package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
)

// Creator creates a single menu item and returns its id.
type Creator interface {
	Execute(ctx context.Context, req *create_menu_item.Request) (string, error)
}

// Result summarises a seed run.
type Result struct {
	Created []string
	Failed  int
}

// Seeder feeds a seed file through the create use case.
type Seeder struct {
	creator         Creator
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithContinueOnError keeps seeding after an item fails to be created.
func WithContinueOnError() Option {
	return func(s *Seeder) { s.continueOnError = true }
}

func NewSeeder(creator Creator, logger *slog.Logger, opts ...Option) *Seeder {
	s := &Seeder{creator: creator, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run converts the whole file first so that a malformed entry aborts the run
// before anything is written.
func (s *Seeder) Run(ctx context.Context, f *File) (Result, error) {
	reqs, err := f.Requests()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		id, err := s.creator.Execute(ctx, req)
		if err != nil {
			if !s.continueOnError {
				return res, fmt.Errorf("failed to create %q: %w", req.Name, err)
			}
			res.Failed++
			s.logger.WarnContext(ctx, "seed item failed", "name", req.Name, "error", err)
			continue
		}
		res.Created = append(res.Created, id)
		s.logger.InfoContext(ctx, "seed item created", "name", req.Name, "menu_item_id", id)
	}
	return res, nil
}
