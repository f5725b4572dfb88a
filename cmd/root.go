package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/agentic-research/a11yname/internal/catalog"
	"github.com/agentic-research/a11yname/internal/ctxlog"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

// version is set at link time.
var version = "dev"

var (
	configPath string
	logLevel   string
	logFormat  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (.hcl, .json or .yaml; default "+catalog.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}

var rootCmd = &cobra.Command{
	Use:           "a11yname",
	Version:       version,
	Short:         "a11yname: find JSX elements without an accessible name",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := ctxlog.New(logLevel, logFormat, cmd.ErrOrStderr())
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCatalog builds the rule catalog from --config, or from the default
// config file in dir when it exists.
func loadCatalog(cmd *cobra.Command, dir string) (*catalog.Catalog, error) {
	logger := ctxlog.FromContext(cmd.Context())

	path := configPath
	if path == "" {
		path = filepath.Join(dir, catalog.DefaultConfigFile)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Debug("No config file, using built-in rules.")
			return catalog.Build(cmd.Context(), nil)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg, err := catalog.Load(osfs.New(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	c, err := catalog.Build(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Info("Loaded config.", "path", path, "rules", len(c.Rules))
	return c, nil
}
