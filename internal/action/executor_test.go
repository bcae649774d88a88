package action

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

func TestExecutor_RunsCommandAndCapturesOutput(t *testing.T) {
	e := NewExecutor(5 * time.Second)

	binding := &store.Binding{Command: "echo", Args: []string{"hello"}}
	output, err := e.Execute(binding, gesture.Event{Gesture: gesture.Click})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "hello" {
		t.Errorf("expected output %q, got %q", "hello", output)
	}
}

func TestExecutor_ExportsEventEnvironment(t *testing.T) {
	e := NewExecutor(5 * time.Second)

	binding := &store.Binding{
		Command: "sh",
		Args:    []string{"-c", "echo $GESTIFY_GESTURE $GESTIFY_HAND $GESTIFY_X $GESTIFY_Y"},
	}
	ev := gesture.Event{
		Gesture:  gesture.Confirm,
		Hand:     "Right",
		Position: image.Point{X: 100, Y: 200},
	}

	output, err := e.Execute(binding, ev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "confirm Right 100 200" {
		t.Errorf("unexpected environment output: %q", output)
	}
}

func TestExecutor_FailedCommandReturnsError(t *testing.T) {
	e := NewExecutor(5 * time.Second)

	binding := &store.Binding{Command: "sh", Args: []string{"-c", "echo oops >&2; exit 1"}}
	_, err := e.Execute(binding, gesture.Event{Gesture: gesture.Click})
	if err == nil {
		t.Fatal("expected error for failing command")
	}
	if !strings.Contains(err.Error(), "oops") {
		t.Errorf("expected stderr in error, got: %v", err)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	e := NewExecutor(100 * time.Millisecond)

	binding := &store.Binding{Command: "sleep", Args: []string{"5"}}
	_, err := e.Execute(binding, gesture.Event{Gesture: gesture.Click})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout in error, got: %v", err)
	}
}
