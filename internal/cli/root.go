// Package cli implements the boostcv command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
	"github.com/YuminosukeSato/boostcv/pkg/log"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "boostcv",
	Short: "K-fold cross-validation for binary classifiers",
	Long: `boostcv trains one model per fold, assembles out-of-fold and averaged
test predictions, and reports ROC AUC, per-fold scores and mean feature
importance.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

// setupLogging installs a zerolog provider on stderr and routes library
// warnings through it.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	provider := log.NewZerologProvider(cmd.ErrOrStderr(), level)
	log.SetProvider(provider)
	if zl, ok := provider.GetLoggerWithName("warnings").(*log.ZerologLogger); ok {
		errors.SetZerologWarnFunc(zl.WarnFunc())
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which CV checks between
// folds.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
