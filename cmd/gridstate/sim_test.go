package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

func TestParseEventsDemoScript(t *testing.T) {
	events, err := parseEvents("u,p,u,c,u")
	if err != nil {
		t.Fatalf("parseEvents() failed: %v", err)
	}

	rec := &fsm.Recorder{}
	m, err := fsm.New(fsm.DefaultConfig(), fsm.WithObserver(rec))
	if err != nil {
		t.Fatalf("fsm.New() failed: %v", err)
	}
	for _, ev := range events {
		ev.apply(m)
	}

	if m.State() != fsm.Paused {
		t.Errorf("State() = %v, expected Paused", m.State())
	}
	if m.Lives() != 1 {
		t.Errorf("Lives() = %d, expected 1", m.Lives())
	}
	if m.Ticks() != 3 {
		t.Errorf("Ticks() = %d, expected 3", m.Ticks())
	}
	if rec.Len() != 2 {
		t.Errorf("recorded %d transitions, expected 2", rec.Len())
	}
}

func TestParseEvents(t *testing.T) {
	tests := []struct {
		script  string
		names   []string
		wantErr string
	}{
		{"", nil, ""},
		{"u, p ,c,i", []string{"update", "pause", "collision", "init"}, ""},
		{"update,collide", []string{"update", "collision"}, ""},
		{"s=PowerMode,S=level_init", []string{"set PowerMode", "set LevelInit"}, ""},
		{"u,x", nil, `event 2: unknown event "x"`},
		{"s=Nope", nil, "event 1"},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			events, err := parseEvents(tt.script)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseEvents(%q) error = %v, expected %q", tt.script, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEvents(%q) failed: %v", tt.script, err)
			}
			if len(events) != len(tt.names) {
				t.Fatalf("parseEvents(%q) = %d events, expected %d", tt.script, len(events), len(tt.names))
			}
			for i, ev := range events {
				if ev.name != tt.names[i] {
					t.Errorf("event %d = %s, expected %s", i, ev.name, tt.names[i])
				}
			}
		})
	}
}
