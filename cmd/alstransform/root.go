package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/alsatian-transform/pkg/config"
	"github.com/hazyhaar/alsatian-transform/pkg/logger"
)

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "alstransform",
		Short:        "Rewrite Alsatian text towards German or Luxembourgish spelling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML config file (default $"+config.EnvPath+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "trace|debug|info|warn|error (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "console|json (overrides config)")

	cmd.AddCommand(
		rulesCmd(a),
		vocabCmd(a),
		compileCmd(a),
		serveCmd(a),
		mcpCmd(a),
		historyCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: cmd.Name(),
		Writer:    cmd.ErrOrStderr(),
	})
	return nil
}
