package cli

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/gacha/internal/config"
	"github.com/idilsaglam/gacha/internal/draw"
	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/logging"
	"github.com/idilsaglam/gacha/internal/store"
	"github.com/idilsaglam/gacha/internal/tui"
	"github.com/idilsaglam/gacha/internal/ui"
	"github.com/idilsaglam/gacha/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options tune output behavior from root flags.
type Options struct {
	ConfigPath string
	Theme      string
	NoColor    bool
	Verbose    bool
}

// env is what every subcommand needs once config is loaded.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func setup(cmd *cobra.Command, opt *Options) (*env, error) {
	cfg, err := config.LoadOrDefault(opt.ConfigPath)
	if err != nil {
		return nil, err
	}

	theme := cfg.UI.Theme
	if opt.Theme != "" {
		theme = opt.Theme
	}
	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(theme)
	if opt.NoColor {
		ui.SetColorMode("never")
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.LogFile(),
		Verbose: opt.Verbose,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Cannot set up logging", "Check log.file and log.level")
	}
	return &env{cfg: cfg, logger: logger, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}, nil
}

func (e *env) openStore() (*store.Store, error) {
	return store.Open(e.cfg, e.logger)
}

func (e *env) engine(noWait bool) *draw.Engine {
	delay := e.cfg.Draw.Delay
	if noWait {
		delay = 0
	}
	return draw.NewEngine(draw.WithDelay(delay))
}

func (e *env) watcher(src watch.Source) *watch.Watcher {
	return watch.New(src,
		watch.WithInterval(e.cfg.Sync.PollInterval),
		watch.WithNotify(e.cfg.Sync.Notify),
		watch.WithLogger(e.logger.Named("watch")),
	)
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// withEnv adapts a command body that needs config and logging.
func withEnv(opt *Options, fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, opt)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd, e, args)
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opt := &Options{}

	root := &cobra.Command{
		Use:   "gacha",
		Short: "Draw a random topic from your list",
		Long: `gacha keeps a list of topics and draws one at random.

Run without arguments to open the full-screen roulette. Press tab there to
add, edit and delete topics. Every change is saved right away and also
exported as an indented JSON file you can ship as the default list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE:          withEnv(opt, runTUI),
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opt.ConfigPath, "config", "", "config file (default ./.gacha.yaml or ~/.config/gacha/config.yaml)")
	pf.StringVar(&opt.Theme, "theme", "", "output theme: classic, neon or mono")
	pf.BoolVar(&opt.NoColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&opt.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newTUICmd(opt),
		newListCmd(opt),
		newAddCmd(opt),
		newEditCmd(opt),
		newRemoveCmd(opt),
		newDrawCmd(opt),
		newExportCmd(opt),
		newWatchCmd(opt),
		newConfigCmd(opt),
		newVersionCmd(),
	)
	return root
}

func newTUICmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen roulette and topic editor",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  withEnv(opt, runTUI),
	}
}

func runTUI(cmd *cobra.Command, e *env, _ []string) error {
	editor, err := e.openStore()
	if err != nil {
		return err
	}
	defer editor.Close()
	reader, err := e.openStore()
	if err != nil {
		return err
	}
	defer reader.Close()

	return tui.Run(cmd.Context(), tui.Options{
		Editor:      editor,
		Reader:      reader,
		Engine:      e.engine(false),
		Watcher:     e.watcher(reader),
		Celebration: e.cfg.Draw.Celebration,
		Logger:      e.logger.Named("tui"),
	})
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
// ctrl+c cancels the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return ExecuteArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs is Execute with explicit arguments and streams.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{fmt.Sprintf("%s\nusage: %s", err, c.UseLine())}
	})

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var gErr *errors.Error
	if goerrors.As(err, &gErr) {
		fmt.Fprint(stderr, gErr.Error())
	} else {
		ui.Fail(stderr, err.Error())
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case errors.IsCode(err, errors.ErrValidation), errors.IsCode(err, errors.ErrBounds):
		return 2
	case isUsage(err):
		return 2
	default:
		return 1
	}
}
