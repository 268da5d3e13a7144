package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStats(appCfg *config.App, w io.Writer) *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "stats",
		Usage: "Counts by level/category",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return withUseCases(ctx, c, appCfg, &repoCfg, nil, func(uc *usecase.UseCases) error {
				stats, err := uc.Risk.RiskStats(ctx)
				if err != nil {
					return err
				}
				return renderStats(w, stats)
			})
		},
	}
}
