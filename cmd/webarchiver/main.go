// Command webarchiver is the CLI entrypoint for the saved web page archiver.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check), the analysis report (--analyze), or the
// archive → verify → delete pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/backmassage/webarchiver/internal/check"
	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/display"
	"github.com/backmassage/webarchiver/internal/logging"
	"github.com/backmassage/webarchiver/internal/pipeline"
	"github.com/backmassage/webarchiver/internal/runlock"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	code := exitOK
	cmd := newRootCmd(&code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "webarchiver: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'webarchiver --help' for usage.")
		return exitFailure
	}
	return code
}

func newRootCmd(code *int) *cobra.Command {
	cfg := config.DefaultConfig()
	var flags *config.FlagState

	cmd := &cobra.Command{
		Use:   "webarchiver [flags] <directory>",
		Short: "Archive saved web pages into verified 7z files",
		Long: `webarchiver finds pages saved by a browser ("page.html" plus a
"page_files" resource folder), compresses each pair into a single 7z archive,
verifies the archive against the originals (integrity test, file count and
CRC32), and only then, if asked, deletes the originals.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bootstrap: the logger doesn't exist yet, so errors are
			// returned to run and printed to stderr.
			if err := flags.Apply(cmd.Flags(), &cfg, args); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			*code = execute(&cfg, cmd.OutOrStdout())
			return nil
		},
	}
	flags = config.RegisterFlags(cmd.Flags(), &cfg)
	return cmd
}

// execute runs everything after configuration and returns the exit code.
func execute(cfg *config.Config, out io.Writer) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webarchiver: %v\n", err)
		return exitFailure
	}
	defer log.Close()

	display.PrintBanner(out)

	// Signal handling: cancel on SIGINT/SIGTERM so the running 7z is
	// killed, its partial archive removed, and the loop stops.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, cfg, log) {
			return exitFailure
		}
		return exitOK
	}

	runID := uuid.NewString()
	log = log.WithRunID(runID)

	log.Info("=== webarchiver v%s (%s) ===", version, commit)
	log.Info("Root: %s", cfg.RootDir)
	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	}
	switch {
	case cfg.AnalyzeOnly:
		log.Info("ANALYZE ONLY: nothing will be written")
	case cfg.DryRun:
		log.Warn("DRY RUN: no archives will be created, nothing deleted")
	}

	if cfg.Mutating() {
		// Fail fast if 7z is unavailable.
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			return exitFailure
		}
		lock, err := runlock.Acquire(cfg.RootDir)
		if err != nil {
			log.Error("%v", err)
			return exitFailure
		}
		defer func() {
			if err := lock.Release(); err != nil {
				log.Warn("%v", err)
			}
		}()
	}
	fmt.Fprintln(out)

	deps := pipeline.NewDeps(cfg, log)
	deps.Out = out
	deps.RunID = runID
	stats, err := pipeline.Run(ctx, cfg, log, deps)
	if err != nil {
		if pipeline.IsAccessError(err) {
			log.Error("Cannot scan %s: %v", cfg.RootDir, err)
			return exitFailure
		}
		if errors.Is(err, context.Canceled) {
			return exitInterrupted
		}
		log.Error("%v", err)
		return exitFailure
	}

	switch {
	case stats.Interrupted:
		return exitInterrupted
	case stats.HasFailures():
		return exitFailure
	default:
		return exitOK
	}
}
