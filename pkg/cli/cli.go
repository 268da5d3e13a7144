package cli

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type options struct {
	writer    io.Writer
	errWriter io.Writer
}

// Option configures Run
type Option func(*options)

// WithWriter redirects command output, which goes to stdout by default
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithErrWriter redirects usage errors, which go to stderr by default
func WithErrWriter(w io.Writer) Option {
	return func(o *options) {
		o.errWriter = w
	}
}

func Run(ctx context.Context, args []string, version string, opts ...Option) error {
	o := &options{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var appCfg config.App
	var noColor bool
	var closer func()

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("RISKREG_NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:      "riskreg",
		Usage:     "Risk register: record, score and review risks",
		Version:   version,
		Writer:    o.writer,
		ErrWriter: o.errWriter,
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			if noColor {
				color.NoColor = true
			}

			if err := sentryCfg.Configure(version); err != nil {
				return ctx, err
			}

			if err := appCfg.Load(); err != nil {
				return ctx, err
			}

			logger := logging.Default()
			ctx = logging.With(ctx, logger)

			logger.Debug("Starting riskreg",
				"logger", loggerCfg,
				"sentry", sentryCfg,
				"config", appCfg.Path(),
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdAdd(&appCfg, o.writer),
			cmdList(&appCfg, o.writer),
			cmdUpdate(&appCfg, o.writer),
			cmdStats(&appCfg, o.writer),
			cmdExport(&appCfg, o.writer),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		sentryCfg.Capture(err)
		return err
	}

	return nil
}
