package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Tomas-vilte/PRCompile/internal/commands/compile"
	"github.com/Tomas-vilte/PRCompile/internal/commands/env"
	"github.com/Tomas-vilte/PRCompile/internal/commands/registry"
	"github.com/Tomas-vilte/PRCompile/internal/config"
	domainErrors "github.com/Tomas-vilte/PRCompile/internal/errors"
	"github.com/Tomas-vilte/PRCompile/internal/i18n"
	"github.com/Tomas-vilte/PRCompile/internal/logger"
	"github.com/Tomas-vilte/PRCompile/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, trans, err := initializeApp(os.LookupEnv, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("error starting prcompile: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		reportError(trans, err)
		os.Exit(1)
	}
}

func initializeApp(lookup config.LookupFunc, stdout, stderr io.Writer) (*cli.Command, *i18n.Translations, error) {
	lang, ok := lookup(config.EnvLanguage)
	if !ok || lang == "" {
		lang = "en"
	}

	translations, err := i18n.NewTranslations(lang, "")
	if err != nil {
		return nil, nil, err
	}

	compileCommand := compile.NewCompileCommand(lookup, stdout)

	registerCommand := registry.NewRegistry(translations)
	if err := registerCommand.Register("compile", compileCommand); err != nil {
		return nil, nil, err
	}
	if err := registerCommand.Register("env", env.NewEnvCommand(lookup, stdout)); err != nil {
		return nil, nil, err
	}

	return &cli.Command{
		Name:      "prcompile",
		Usage:     translations.GetMessage("app_usage", 0, nil),
		Version:   version.FullVersion(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   translations.GetMessage("debug_flag_usage", 0, nil),
				Sources: cli.EnvVars(config.EnvDebug),
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: translations.GetMessage("lang_flag_usage", 0, nil),
			},
		},
		Commands: registerCommand.CreateCommands(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if lang := cmd.String("lang"); lang != "" {
				if err := translations.SetLanguage(lang); err != nil {
					return ctx, err
				}
			}
			l := logger.Initialize(stderr, cmd.Bool("debug"))
			return logger.WithLogger(ctx, l), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := compileCommand.Run(ctx, translations)
			return err
		},
	}, translations, nil
}

// reportError prints the failure and, for domain errors, the suggestion.
func reportError(trans *i18n.Translations, err error) {
	ctx := context.Background()
	logger.Error(ctx, trans.GetMessage("run_failed", 0, nil), err)

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Suggestion != "" {
		logger.Info(ctx, fmt.Sprintf("💡 %s", appErr.Suggestion))
	}
}
