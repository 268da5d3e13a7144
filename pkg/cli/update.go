package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdUpdate(appCfg *config.App, w io.Writer) *cli.Command {
	var status, notes string
	var repoCfg config.Repository

	statuses := make([]string, 0, len(types.AllStatuses()))
	for _, s := range types.AllStatuses() {
		statuses = append(statuses, s.String())
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "status",
			Usage:       "New status (" + strings.Join(statuses, ", ") + ")",
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "notes",
			Usage:       "Notes appended to the existing ones",
			Destination: &notes,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:      "update",
		Usage:     "Update a risk by id",
		ArgsUsage: "ID",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			arg, err := singleArg(c, "ID")
			if err != nil {
				return err
			}

			input := usecase.UpdateRiskInput{Notes: notes}
			if status != "" {
				s, err := types.ParseStatus(status)
				if err != nil {
					return err
				}
				input.Status = s
			}

			id := types.RiskID(arg)
			return withUseCases(ctx, c, appCfg, &repoCfg, nil, func(uc *usecase.UseCases) error {
				risk, found, err := uc.Risk.UpdateRisk(ctx, id, input)
				if err != nil {
					return err
				}
				if !found {
					_, err := fmt.Fprintln(w, "No risk with that id.")
					return err
				}
				_, err = fmt.Fprintf(w, "Updated %s\n", risk.ID)
				return err
			})
		},
	}
}
