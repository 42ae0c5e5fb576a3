// Recipegen, a terminal front end for the recipe-generation service.
//
// Usage:
//
//	recipegen [--config file] [--base-url url] [--verbose] [--quiet] [--log-file path]
//	recipegen generate -i egg -i flour [--cuisine c] [--lang l] [--duration n] [--json]
//	recipegen list
//	recipegen config [--save]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipegen/internal/api"
	"github.com/hammamikhairi/recipegen/internal/config"
	"github.com/hammamikhairi/recipegen/internal/console"
	"github.com/hammamikhairi/recipegen/internal/display"
	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/form"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var shown reportedError
	if !errors.As(err, &shown) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	stop()
	os.Exit(1)
}

// reportedError wraps an error the user has already been notified of.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath    string
	baseURL       string
	logFile       string
	markdownStyle string
	verbose       bool
	quiet         bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "recipegen",
		Short: "Generate recipes from the ingredients you have",
		Long: `recipegen collects ingredients, a cuisine, a language and a target
duration, asks the recipe service to generate a recipe and shows the result.

Run without arguments to open the interactive form.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.DefaultPath, "YAML config file")
	pf.StringVar(&f.baseURL, "base-url", "", "recipe service base URL (overrides config)")
	pf.StringVar(&f.logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	pf.StringVar(&f.markdownStyle, "markdown-style", "", "glamour style for recipe cards (auto, dark, light, notty, ...)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose/debug logging")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "disable all logging")

	root.AddCommand(newGenerateCmd(f), newListCmd(f), newConfigCmd(f))
	return root
}

// runtime is what every command needs once flags and config are resolved.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	client  *api.Client
	closers []io.Closer
}

func (r *runtime) Close() {
	_ = r.log.Sync()
	for _, c := range r.closers {
		_ = c.Close()
	}
}

// setup loads configuration, applies flag overrides and builds the logger
// and service client.
func setup(cmd *cobra.Command, f *rootFlags) (*runtime, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("markdown-style") {
		cfg.MarkdownStyle = f.markdownStyle
	}
	if f.verbose {
		cfg.LogLevel = logger.LevelVerbose.String()
	}
	if f.quiet {
		cfg.LogLevel = logger.LevelOff.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.GetLogLevel()

	rt := &runtime{cfg: cfg}

	// Direct logs to a file by default so the form stays clean.
	logOut := cmd.ErrOrStderr()
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		fh, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = fh
			rt.closers = append(rt.closers, fh)
		}
	}

	// Third-party packages that use the standard logger write to the same
	// place instead of the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	rt.log = logger.New(level, logOut)
	rt.client = api.NewClient(cfg.BaseURL, rt.log,
		api.WithHTTPTimeout(cfg.GetTimeout()),
		api.WithUserAgent("recipegen/"+version),
	)
	return rt, nil
}

func runInteractive(cmd *cobra.Command, f *rootFlags) error {
	rt, err := setup(cmd, f)
	if err != nil {
		return err
	}
	defer rt.Close()

	parser := console.NewParser(rt.log)
	ui := display.NewUI(rt.client, parser, rt.log, display.WithMarkdownStyle(rt.cfg.MarkdownStyle))
	ctrl := form.New(rt.client, rt.log,
		form.WithNotifier(ui.Notifier()),
		form.WithObserver(func(s domain.FormState) {
			rt.log.Debug("form: status=%s ingredients=%d cuisine=%s lang=%s duration=%d",
				s.Status, len(s.Ingredients), s.CuisineType, s.Language, s.Duration)
		}),
	)

	fmt.Fprint(cmd.OutOrStdout(), display.RenderBanner())
	fmt.Fprintln(cmd.OutOrStdout())

	rt.log.Info("recipegen %s started, service at %s", version, rt.cfg.BaseURL)
	if err := ui.Run(cmd.Context(), ctrl); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	rt.log.Info("recipegen stopped")
	return nil
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	fh, ok := w.(*os.File)
	return ok && term.IsTerminal(fh.Fd())
}
