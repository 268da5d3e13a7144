package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAdd(appCfg *config.App, w io.Writer) *cli.Command {
	var likelihood, impact int
	var category, owner, notes string
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "likelihood",
			Aliases:     []string{"l"},
			Usage:       "Likelihood rating (1-5)",
			Required:    true,
			Destination: &likelihood,
		},
		&cli.IntFlag{
			Name:        "impact",
			Aliases:     []string{"i"},
			Usage:       "Impact rating (1-5)",
			Required:    true,
			Destination: &impact,
		},
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Category, e.g. vendor, cloud, privacy",
			Destination: &category,
		},
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Responsible person or team",
			Destination: &owner,
		},
		&cli.StringFlag{
			Name:        "notes",
			Usage:       "Free-form notes",
			Destination: &notes,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:      "add",
		Usage:     "Add a risk",
		ArgsUsage: "TITLE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			title, err := singleArg(c, "TITLE")
			if err != nil {
				return err
			}

			slackCfg.Merge(appCfg.File(), c.IsSet)
			opts, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			draft := model.RiskDraft{
				Title:      title,
				Likelihood: types.Likelihood(likelihood),
				Impact:     types.Impact(impact),
				Category:   category,
				Owner:      owner,
				Notes:      notes,
			}

			return withUseCases(ctx, c, appCfg, &repoCfg, opts, func(uc *usecase.UseCases) error {
				risk, err := uc.Risk.AddRisk(ctx, draft)
				if err != nil {
					return err
				}
				return renderAdded(w, risk)
			})
		},
	}
}
