package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// withUseCases resolves the store for the running command, builds the use
// cases on it and closes the store when fn returns.
func withUseCases(ctx context.Context, c *cli.Command, appCfg *config.App, repoCfg *config.Repository, opts []usecase.Option, fn func(*usecase.UseCases) error) error {
	repoCfg.Merge(appCfg.File(), c.IsSet)
	logging.From(ctx).Debug("Resolved store", "repository", *repoCfg)

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to configure repository")
	}
	defer safe.Close(ctx, repo)

	return fn(usecase.New(repo, opts...))
}
