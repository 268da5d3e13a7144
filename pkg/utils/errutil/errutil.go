package errutil

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// Handle records a failure the running command continues past, such as a
// notification that could not be delivered, and returns err unchanged.
// Fatal errors are not passed here; they are returned up to cli.Run.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	attrs := []any{slog.String("error", err.Error())}

	var ge *goerr.Error
	if errors.As(err, &ge) {
		values := make([]any, 0, len(ge.Values()))
		for k, v := range ge.Values() {
			values = append(values, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("values", values...))
		logging.From(ctx).Debug(msg, "stack", ge.Stacks())
	}

	logging.From(ctx).Warn(msg, attrs...)
	return err
}
