package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/cmd"
	"github.com/gravitrone/coursedesk/internal/config"
	"github.com/gravitrone/coursedesk/internal/logging"
	"github.com/gravitrone/coursedesk/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly.
	// Must be set before any lipgloss style initialization.
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coursedesk",
		Short: "coursedesk - course administration console",
		Long:  "coursedesk: browse and edit students, teachers, subjects and groups of a course management server.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.DeleteCmd())
	return root
}

func runTUI() error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := api.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout).WithLogger(logger)
	logger.Info("starting", zap.String("base_url", cfg.BaseURL))
	return ui.Run(ui.NewApp(client, cfg, logger))
}
