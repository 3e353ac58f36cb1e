package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"osdi-survey/internal/app"
	"osdi-survey/internal/catalog"
	"osdi-survey/internal/config"
	"osdi-survey/internal/transport/terminal"
)

// NewRunCmd builds the CLI subcommand that administers surveys on the terminal.
func NewRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Administer the survey until end of input",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurvey(cmd.Context(), *configPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runSurvey(ctx context.Context, configPath string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runSurveyWithConfig(ctx, cfg, in, out)
}

func runSurveyWithConfig(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	questions, err := catalog.Load(cfg.Survey.Catalog)
	if err != nil {
		return err
	}
	if cfg.Survey.InfoURL != "" {
		questions.InfoURL = cfg.Survey.InfoURL
	}

	backend, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Printf("close history: %v", err)
		}
	}()

	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}

	store := app.NewHistoryStore(backend.table, cfg.History.Limit)
	flow := app.NewFlowController(questions, store)
	log.Printf("survey ready (%d questions, history driver %s, keeping %d)", flow.QuestionCount(), cfg.History.Driver, cfg.History.Limit)
	return terminal.NewShell(flow, in, out).Run(ctx)
}
