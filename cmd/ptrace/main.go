// Command ptrace replays an operation script against a ProbeTable and prints the result of every operation.
//
//	ptrace [--config ptrace.toml] [--verify=false] [-v] [script]
//
// The script is read from stdin when no file is given or the file is "-".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/g-m-twostay/probing/internal/config"
	"github.com/g-m-twostay/probing/internal/logutil"
	"github.com/g-m-twostay/probing/internal/trace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cmd := newCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cmd.PrintErrln("error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var mismatch *trace.MismatchError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &mismatch):
		return exitMismatch
	default:
		return exitError
	}
}

func newCommand() *cobra.Command {
	var (
		configPath string
		verify     bool
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:           "ptrace [script]",
		Short:         "Replay an operation script against a ProbeTable",
		Long:          "Replay an operation script against a ProbeTable, printing one result line per operation and checking each against a reference multiset",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("verify") {
				cfg.Trace.Verify = verify
			}
			if verbose {
				cfg.Log.Level = "debug"
			}
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return replay(cmd, cfg, name)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().BoolVar(&verify, "verify", true, "check every operation against a reference multiset")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every operation")
	return cmd
}

func replay(cmd *cobra.Command, cfg config.Config, name string) error {
	logger, closeLog, err := logutil.New(&cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	script := cmd.InOrStdin()
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			logger.Error("open script", zap.Error(err))
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		script = f
	}

	logger.Info("replaying",
		zap.String("script", name),
		zap.Int("capacity", cfg.Table.Capacity),
		zap.Float64("threshold", cfg.Table.Threshold),
		zap.Bool("verify", cfg.Trace.Verify))
	err = trace.NewRunner(cfg, logger).Run(cmd.Context(), script, cmd.OutOrStdout())
	var mismatch *trace.MismatchError
	switch {
	case err == nil:
	case errors.As(err, &mismatch):
		logger.Error("verification failed", zap.Error(err))
	default:
		logger.Error("replay failed", zap.Error(err))
	}
	return err
}
