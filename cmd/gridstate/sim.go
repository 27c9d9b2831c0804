package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridstate/internal/fsm"
	"github.com/vovakirdan/gridstate/internal/registry"
	"github.com/vovakirdan/gridstate/internal/storage"
	"github.com/vovakirdan/gridstate/internal/telemetry"
)

var (
	flagEvents     string
	flagSimMode    string
	flagManualInit bool
	flagJournal    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Replay machine events without a terminal UI",
	Long: `Drive a state machine with a comma-separated event script and print
every transition.

Events:
  u         - update (one tick)
  p         - pause pressed
  c         - normal collision
  i         - init complete
  s=STATE   - force a state (e.g. s=PowerMode)

The machine config comes from the mode, then the config file, then flags.

Examples:
  gridstate sim
  gridstate sim --events u,c,u,u,c
  gridstate sim --mode mousetrap --events u,s=PlayerTurn,s=MouseTurn,u
  gridstate sim --policy always-life-lost --lives 1 --events u,c,u,u,c`,
	Run: runSim,
}

func init() {
	addMachineFlags(simCmd)
	simCmd.Flags().StringVar(&flagEvents, "events", "u,p,u,c,u", "Comma-separated event script")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "", "Mode supplying the machine defaults (default from config)")
	simCmd.Flags().BoolVar(&flagManualInit, "manual-init", false, "Stay in LevelInit until an 'i' event")
	simCmd.Flags().BoolVar(&flagJournal, "journal", false, "Record the run in the journal database")
}

// simEvent is one parsed script step.
type simEvent struct {
	name   string
	set    bool
	target fsm.State
	apply  func(m *fsm.Machine)
}

func parseEvents(script string) ([]simEvent, error) {
	var events []simEvent
	var errs []error
	for i, raw := range strings.Split(script, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		switch strings.ToLower(tok) {
		case "u", "update":
			events = append(events, simEvent{name: "update", apply: (*fsm.Machine).Update})
		case "p", "pause":
			events = append(events, simEvent{name: "pause", apply: (*fsm.Machine).PausePressed})
		case "c", "collide", "collision":
			events = append(events, simEvent{name: "collision", apply: (*fsm.Machine).CollisionNormal})
		case "i", "init":
			events = append(events, simEvent{name: "init", apply: (*fsm.Machine).InitComplete})
		default:
			name, value, ok := strings.Cut(tok, "=")
			if !ok || strings.ToLower(name) != "s" {
				errs = append(errs, fmt.Errorf("event %d: unknown event %q", i+1, tok))
				continue
			}
			state, err := fsm.ParseState(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("event %d: %w", i+1, err))
				continue
			}
			events = append(events, simEvent{
				name:   "set " + state.String(),
				set:    true,
				target: state,
				apply:  func(m *fsm.Machine) { m.SetState(state) },
			})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return events, nil
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if err := applyMachineFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagManualInit {
		cfg.Machine.ManualInit = true
	}

	modeID := flagSimMode
	if modeID == "" {
		modeID = cfg.Session.Mode
	}
	mode, err := registry.Lookup(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	machineCfg, err := cfg.MachineFor(mode.MachineConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	events, err := parseEvents(flagEvents)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, "sim")
	out := telemetry.NewLogger(os.Stdout, log.InfoLevel, "sim")
	opts := []fsm.Option{fsm.WithObserver(telemetry.NewLogObserver(out))}

	recorder := &fsm.Recorder{}
	opts = append(opts, fsm.WithObserver(recorder))

	var store *storage.Store
	sessionID := uuid.NewString()
	if flagJournal {
		store = openStore(cfg, logger)
	}
	if store != nil {
		defer store.Close()
		err := store.BeginSession(storage.SessionRecord{
			ID:         sessionID,
			Mode:       mode.ID,
			Variant:    machineCfg.Variant.Name(),
			Level:      "sim",
			StartLives: machineCfg.Lives,
		})
		if err != nil {
			logger.Warn("could not journal run", "error", err)
			store = nil
		} else {
			opts = append(opts, fsm.WithObserver(storage.NewJournal(store, sessionID, logger)))
		}
	}

	m, err := fsm.New(machineCfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("mode=%s variant=%s policy=%s lives=%d\n",
		mode.ID, machineCfg.Variant.Name(), machineCfg.Policy, machineCfg.Lives)
	for _, ev := range events {
		before := recorder.Len()
		ev.apply(m)
		if recorder.Len() == before {
			logger.Debug("no transition", "event", ev.name, "state", m.State().String())
		}
		if ev.set && !m.Variant().Has(ev.target) {
			logger.Warn("state not in variant, ignored", "state", ev.target.String(), "variant", m.Variant().Name())
		}
	}

	fmt.Printf("final state=%s lives=%d ticks=%d transitions=%d\n",
		m.State(), m.Lives(), m.Ticks(), recorder.Len())

	if store != nil {
		if err := store.EndSession(sessionID, m.State().String(), m.Lives(), m.Ticks()); err != nil {
			logger.Warn("could not close journal entry", "error", err)
		} else {
			fmt.Printf("journaled as %s\n", sessionID)
		}
	}
}
