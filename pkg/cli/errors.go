package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ErrInvalidArguments is returned when a command gets the wrong number of positional arguments
var ErrInvalidArguments = goerr.New("invalid arguments")

// singleArg returns the one positional argument c requires
func singleArg(c *cli.Command, name string) (string, error) {
	if c.NArg() != 1 {
		return "", goerr.Wrap(ErrInvalidArguments, "exactly one "+name+" is required (quote values containing spaces)",
			goerr.V("command", c.Name),
			goerr.V("args", c.Args().Slice()),
		)
	}
	return c.Args().First(), nil
}
