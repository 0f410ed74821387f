package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/duedo/internal/config"
	"github.com/idilsaglam/duedo/internal/duedate"
	"github.com/idilsaglam/duedo/internal/logging"
	"github.com/idilsaglam/duedo/internal/store"
	"github.com/idilsaglam/duedo/internal/tui"
	"github.com/idilsaglam/duedo/internal/ui"
)

// flags hold root flag values; overrides only applies the ones the user set.
type flags struct {
	cfgFile     string
	theme       string
	logFile     string
	logLevel    string
	noAltScreen bool
	noColor     bool
	summary     bool
	group       bool
	seed        []string
}

func NewRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "duedo",
		Short: "A terminal todo list with due dates",
		Long: `duedo keeps a todo list for the length of a terminal session.

Add items with a due date, tick them off, edit or remove them. Nothing is
written to disk; pass --summary to print the list when you quit.`,
		Example: `  duedo
  duedo --add "Buy milk@today" --add "File taxes@2025-04-15"
  duedo --theme neon --summary --group`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.cfgFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/duedo/config.toml, then ./.duedo.toml)")
	pf.StringVar(&f.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")

	fl := cmd.Flags()
	fl.BoolVar(&f.noAltScreen, "no-alt-screen", false, "render inline instead of the alternate screen")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colors")
	fl.BoolVar(&f.summary, "summary", false, "print the list when quitting")
	fl.BoolVar(&f.group, "group", false, "group the summary by pending/done")
	fl.StringArrayVar(&f.seed, "add", nil, `start with an item, as "text@due" (repeatable)`)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with the process context.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func run(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, f.noColor)

	st := store.New()
	st.Subscribe(logger.StoreObserver())
	if err := seed(st, f.seed, time.Now()); err != nil {
		return err
	}
	logger.Info("starting", "items", st.Len(), "theme", cfg.Theme, "config", cfg.Path)

	opts := tui.OptionsFrom(cfg)
	opts.Logger = logger.Logger
	m := tui.New(st, opts)

	var extra []tea.ProgramOption
	if in := cmd.InOrStdin(); in != os.Stdin {
		extra = append(extra, tea.WithInput(in))
	}
	if out := cmd.OutOrStdout(); out != os.Stdout {
		extra = append(extra, tea.WithOutput(out))
	}
	p := tui.NewProgram(cmd.Context(), m, cfg.AltScreen, extra...)

	if len(cfg.Paths) > 0 {
		w, err := config.NewWatcher(f.cfgFile, cfg, func(c *config.Config) {
			overrides(cmd, f, c)
			if err := c.Validate(); err != nil {
				logger.Warn("config reload rejected", "err", err)
				return
			}
			logger.Apply(c.Log)
			p.Send(tui.ConfigChangedMsg{Config: c})
		}, func(err error) {
			logger.Warn("config watch", "err", err)
		})
		if err != nil {
			logger.Warn("config watch disabled", "paths", cfg.Paths, "err", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	done, pending := st.Stats()
	logger.Info("exiting", "done", done, "pending", pending, "version", st.Version())

	if cfg.SummaryOnExit {
		printSummary(cmd.OutOrStdout(), st, cfg.Group)
	}
	return nil
}

func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.cfgFile)
	if err != nil {
		return nil, err
	}
	overrides(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrides applies the flags the user actually passed on top of cfg.
func overrides(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("theme") {
		cfg.Theme = f.theme
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("no-alt-screen") {
		cfg.AltScreen = !f.noAltScreen
	}
	if changed("summary") {
		cfg.SummaryOnExit = f.summary
	}
	if changed("group") {
		cfg.Group = f.group
	}
}

// seed adds the --add items; each is "text@due" split on the last @.
func seed(st *store.Store, specs []string, now time.Time) error {
	for _, spec := range specs {
		i := strings.LastIndex(spec, "@")
		if i < 0 {
			return fmt.Errorf("--add %q: want text@due", spec)
		}
		due, err := duedate.Normalize(spec[i+1:], now)
		if err != nil {
			return fmt.Errorf("--add %q: %w", spec, err)
		}
		if _, err := st.Add(strings.TrimSpace(spec[:i]), due); err != nil {
			return fmt.Errorf("--add %q: %w", spec, err)
		}
	}
	return nil
}

func printSummary(w io.Writer, st *store.Store, group bool) {
	ui.Summary(w, st.Items(), group, time.Now())
}
