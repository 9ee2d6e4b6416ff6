// Package cli wires configuration, logging and storage together and exposes
// calma as cobra commands. The root command opens the TUI.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/calma/internal/config"
	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/logger"
	"github.com/sadopc/calma/internal/moodlog"
	"github.com/sadopc/calma/internal/store"
	"github.com/sadopc/calma/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// OpenFunc opens the key-value backend described by cfg.
type OpenFunc func(ctx context.Context, cfg config.Storage) (store.KV, error)

// env is the state shared by every command of one invocation.
type env struct {
	configPath string
	now        func() time.Time
	open       OpenFunc
	// dispatcher overrides the link opener; nil uses the desktop handler.
	dispatcher contact.Dispatcher

	cfg  *config.Config
	log  *zap.Logger
	kv   store.KV
	mlog *moodlog.Log
}

// OpenStore opens SQLite or Redis according to cfg.Backend.
func OpenStore(ctx context.Context, cfg config.Storage) (store.KV, error) {
	if cfg.Backend == "redis" {
		r, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	path := cfg.Path
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("get db path: %w", err)
		}
		path = p
	}
	s, err := store.New(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd(OpenStore).Execute()
}

// NewRootCmd builds the command tree. open is called once per invocation,
// after configuration is loaded.
func NewRootCmd(open OpenFunc) *cobra.Command {
	return newRootCmd(&env{now: time.Now, open: open})
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "calma",
		Short:         "Registro emocional, tendencias y ejercicios de bienestar",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The TUI owns the terminal, so it never logs to stderr.
			return e.setup(cmd.Context(), cmd.Parent() != nil)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runTUI()
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ~/.config/calma/config.yaml)")

	root.AddCommand(
		newCheckInCmd(e),
		newHistoryCmd(e),
		newStatsCmd(e),
		newSurveyCmd(e),
		newExercisesCmd(e),
		newContactCmd(e),
		newHelpLineCmd(e),
		newExportCmd(e),
		newClearCmd(e),
	)
	return root
}

func (e *env) setup(ctx context.Context, console bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if !console {
		cfg.Log.Console = false
	}
	e.cfg = cfg

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	e.log = log

	kv, err := e.open(ctx, cfg.Storage)
	if err != nil {
		e.log.Error("open store failed", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		return fmt.Errorf("open store: %w", err)
	}
	e.kv = kv
	e.mlog = moodlog.New(kv, log)
	e.log.Debug("store opened", zap.String("backend", cfg.Storage.Backend))
	return nil
}

func (e *env) teardown() error {
	var err error
	if e.kv != nil {
		err = e.kv.Close()
		e.kv = nil
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
	return err
}

func (e *env) helpLine() contact.HelpLine {
	h := contact.DefaultHelpLine()
	if e.cfg == nil {
		return h
	}
	c := e.cfg.HelpLine
	h.Phone = c.Phone
	h.WhatsApp = c.WhatsApp
	h.VideoURL = c.VideoURL
	h.GuideURL = c.GuideURL
	return h
}

func (e *env) linkDispatcher() contact.Dispatcher {
	if e.dispatcher != nil {
		return e.dispatcher
	}
	return contact.ExecDispatcher{Log: e.log}
}

func (e *env) runTUI() error {
	home, _ := os.UserHomeDir()
	app := tui.NewApp(e.mlog, tui.Options{
		Dispatcher: e.linkDispatcher(),
		HelpLine:   e.helpLine(),
		WindowDays: e.cfg.Insights.WindowDays,
		ExportDir:  home,
		Now:        e.now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	e.log.Info("tui started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
