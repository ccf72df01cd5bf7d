package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/config"
	"github.com/artem13815/skillsync/pkg/logger"
)

const app = "skillsync"

var (
	flagDebug bool
	flagJSON  bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillsync matches resumes against ideal profiles built from live job postings",
		// Без подкоманды запускаем HTTP-сервер.
		RunE:          func(cmd *cobra.Command, args []string) error { return serve(cmd) },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "verbose/debug output (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "json format for logging (overrides LOG_JSON)")
}

// setup loads configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("debug") {
		cfg.LogDebug = flagDebug
	}
	if cmd.Flags().Changed("json") {
		cfg.LogJSON = flagJSON
	}
	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}
