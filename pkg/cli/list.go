package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList(appCfg *config.App, w io.Writer) *cli.Command {
	var filter model.RiskFilter
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Show only risks in this category",
			Destination: &filter.Category,
		},
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Show only risks owned by this person or team (case-insensitive)",
			Destination: &filter.Owner,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List risks (sorted by score)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return withUseCases(ctx, c, appCfg, &repoCfg, nil, func(uc *usecase.UseCases) error {
				risks, err := uc.Risk.ListRisks(ctx, filter)
				if err != nil {
					return err
				}
				return renderRiskList(w, risks)
			})
		},
	}
}
