package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExport(appCfg *config.App, w io.Writer) *cli.Command {
	var output string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "CSV destination",
			Value:       usecase.DefaultExportPath,
			Sources:     cli.EnvVars("RISKREG_EXPORT_PATH"),
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export risks to CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if p := appCfg.File().Export.Path; p != "" && !c.IsSet("output") {
				output = p
			}
			if output == "" {
				output = usecase.DefaultExportPath
			}

			return withUseCases(ctx, c, appCfg, &repoCfg, nil, func(uc *usecase.UseCases) error {
				n, err := uc.Risk.ExportRisks(ctx, output)
				if err != nil {
					return err
				}
				if n == 0 {
					_, err := fmt.Fprintln(w, "No data to export.")
					return err
				}
				_, err = fmt.Fprintf(w, "Exported %d risks to %s\n", n, output)
				return err
			})
		},
	}
}
