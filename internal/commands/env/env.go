package env

import (
	"context"
	"fmt"
	"io"

	"github.com/Tomas-vilte/PRCompile/internal/config"
	"github.com/Tomas-vilte/PRCompile/internal/i18n"
	"github.com/urfave/cli/v3"
)

// Variables are the GitHub Actions variables worth seeing when a workflow
// misbehaves.
var Variables = []string{
	"GITHUB_EVENT_NAME",
	"GITHUB_EVENT_PATH",
	"GITHUB_WORKSPACE",
	"GITHUB_SHA",
	"GITHUB_REF",
	"GITHUB_HEAD_REF",
	"GITHUB_BASE_REF",
	"GITHUB_SERVER_URL",
	"GITHUB_API_URL",
	"GITHUB_GRAPHQL_URL",
}

type EnvCommand struct {
	lookup config.LookupFunc
	stdout io.Writer
}

func NewEnvCommand(lookup config.LookupFunc, stdout io.Writer) *EnvCommand {
	return &EnvCommand{
		lookup: lookup,
		stdout: stdout,
	}
}

func (c *EnvCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: t.GetMessage("env_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.Print()
		},
	}
}

// Print writes "NAME : value" per variable, "None" when unset.
func (c *EnvCommand) Print() error {
	for _, name := range Variables {
		value, ok := c.lookup(name)
		if !ok {
			value = "None"
		}
		if _, err := fmt.Fprintf(c.stdout, "%s : %s\n", name, value); err != nil {
			return err
		}
	}
	return nil
}
