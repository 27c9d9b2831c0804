package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

func TestLogObserverWritesTransition(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.InfoLevel, "test")
	logger.SetReportTimestamp(false)

	m, err := fsm.New(fsm.DefaultConfig(), fsm.WithObserver(NewLogObserver(logger, "session", "abc")))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	m.Update()

	out := buf.String()
	for _, want := range []string{"state transition", "from=LevelInit", "to=Playing", "session=abc"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLogObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, log.WarnLevel, "test")

	obs := NewLogObserver(logger)
	obs.OnTransition(fsm.Transition{From: fsm.Playing, To: fsm.Paused})

	if buf.Len() != 0 {
		t.Errorf("expected no output at warn level, got %q", buf.String())
	}
}

func TestSpanObserverRecordsEvents(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "session")
	m, err := fsm.New(fsm.DefaultConfig(), fsm.WithObserver(NewSpanObserver(span)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	m.Update()
	m.CollisionNormal()
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, expected 1", len(spans))
	}
	events := spans[0].Events()
	if len(events) != 2 {
		t.Fatalf("recorded %d events, expected 2", len(events))
	}
	for _, ev := range events {
		if ev.Name != "state.transition" {
			t.Errorf("event name = %q, expected state.transition", ev.Name)
		}
	}

	var final string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "session.final_state" {
			final = kv.Value.AsString()
		}
	}
	if final != "GameOver" {
		t.Errorf("session.final_state = %q, expected GameOver", final)
	}
}
