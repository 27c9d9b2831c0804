package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/vovakirdan/gridstate/internal/config"
	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/platform/tui"
	"github.com/vovakirdan/gridstate/internal/registry"
	"github.com/vovakirdan/gridstate/internal/session"
	"github.com/vovakirdan/gridstate/internal/storage"
)

var (
	flagLevel      string
	flagDifficulty string
	flagLives      int
	flagPolicy     string
	flagVariant    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a session of the given mode. Without a mode a picker menu is shown.

Controls:
  Arrows/WASD  - Move (only while Playing)
  P/Space      - Pause / resume
  C            - Inject a collision
  R            - New session (after game over)
  Esc/B        - Back to menu (menu play, when paused or over)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy     - 5 lives, life counting
  normal   - 3 lives, life counting
  hard     - 1 life, life counting
  classic  - 1 life, every collision is LifeLost (never GameOver)

Examples:
  gridstate play
  gridstate play classic --difficulty easy
  gridstate play classic --level box
  gridstate play mousetrap --policy life-counting --lives 3
  gridstate play classic --level ./my-level.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addMachineFlags(playCmd)
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID or YAML file (default: mode's level)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
}

// addMachineFlags registers the flags that override the machine config.
func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLives, "lives", 0, "Starting lives (0 = mode default)")
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "Collision policy: life-counting, always-life-lost, sudden-death")
	cmd.Flags().StringVar(&flagVariant, "variant", "", "State set: classic, mousetrap, base")
}

// applyMachineFlags applies preset and machine flags to cfg. Explicit flags
// win over the preset.
func applyMachineFlags(cfg *config.Config) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(cfg, preset)

	if flagLives > 0 {
		cfg.Machine.Lives = flagLives
	}
	if flagPolicy != "" {
		cfg.Machine.CollisionPolicy = flagPolicy
	}
	if flagVariant != "" {
		cfg.Machine.Variant = flagVariant
	}
	return cfg.Validate()
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if err := applyMachineFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel != "" {
		cfg.Session.Level = flagLevel
	}

	modeID := ""
	if len(args) == 1 {
		modeID = args[0]
		if !registry.Exists(modeID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
			fmt.Fprintln(os.Stderr, "Run 'gridstate list' to see available modes.")
			os.Exit(1)
		}
	}

	// Logs would tear the alternate screen, so they go to a file in debug
	// mode and are discarded otherwise.
	logger, closeLog := playLogger(cfg)
	defer closeLog()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}
	tracer, shutdown := setupTracing(context.Background(), cfg, logger, "play")
	defer shutdown()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Session.TickRate,
	}

	if modeID != "" {
		factory := newFactory(modeID, cfg, logger, store, tracer)
		if _, err := tui.Run(factory, rc, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runMenuLoop(cfg, rc, logger, store, tracer)
}

// runMenuLoop alternates between the mode picker, sessions and history
// until the player quits.
func runMenuLoop(cfg config.Config, rc core.RuntimeConfig, logger *log.Logger, store *storage.Store, tracer trace.Tracer) {
	for {
		res, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = res.Config

		switch {
		case res.Quit:
			return

		case res.WantHistory:
			goBack, err := tui.RunHistory(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}

		default:
			factory := newFactory(res.ModeID, cfg, logger, store, tracer)
			back, err := tui.Run(factory, rc, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
			}
			if !back {
				return
			}
		}
	}
}

// newFactory builds sessions of modeID for the TUI host.
func newFactory(modeID string, cfg config.Config, logger *log.Logger, store *storage.Store, tracer trace.Tracer) tui.Factory {
	return func() (registry.Game, error) {
		opts := []session.Option{session.WithLogger(logger, cfg.Logging.Transitions)}
		if store != nil {
			opts = append(opts, session.WithStore(store))
		}
		if tracer != nil {
			opts = append(opts, session.WithTracer(tracer))
		}
		return session.FromConfig(modeID, cfg, opts...)
	}
}

func playLogger(cfg config.Config) (*log.Logger, func()) {
	logger := newLogger(cfg, "gridstate")
	logger.SetOutput(io.Discard)
	if cfg.LogLevel() != log.DebugLevel {
		return logger, func() {}
	}

	path, err := config.ExpandHome("~/.gridstate/debug.log")
	if err != nil {
		return logger, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logger, func() {}
	}
	logger.SetOutput(f)
	logger.Debug("debug log opened", "pid", os.Getpid())
	return logger, func() { f.Close() }
}
