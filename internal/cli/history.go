package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"osdi-survey/internal/app"
	"osdi-survey/internal/config"
	"osdi-survey/internal/domain"
)

// NewHistoryCmd lists the retained score records.
func NewHistoryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent results, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return printHistory(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func printHistory(ctx context.Context, cfg config.Config, out io.Writer) error {
	backend, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	records, err := app.NewHistoryStore(backend.table, cfg.History.Limit).Recent(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no results recorded")
		return nil
	}
	fmt.Fprintf(out, "%-19s  %-16s  %3s  %-11s  %6s  %s\n", "DATE", "NAME", "AGE", "GENDER", "SCORE", "SEVERITY")
	for _, r := range records {
		fmt.Fprintf(out, "%-19s  %-16s  %3d  %-11s  %6.2f  %s\n",
			r.Date.Format(domain.DateLayout), r.Name, r.Age, r.Gender, r.Score, app.Classify(r.Score))
	}
	return nil
}
