package vscode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandsRegisterAndExecute(t *testing.T) {
	api := NewCommandsAPI()
	api.RegisterCommand("demo.add", func(args ...any) (any, error) {
		sum := 0
		for _, a := range args {
			sum += a.(int)
		}
		return sum, nil
	})

	got, err := api.ExecuteCommand("demo.add", 1, 2, 3)
	if err != nil {
		t.Fatalf("ExecuteCommand: %v", err)
	}
	if got != 6 {
		t.Fatalf("result = %v, want 6", got)
	}
}

func TestCommandsUnknownID(t *testing.T) {
	api := NewCommandsAPI()
	if _, err := api.ExecuteCommand("no.such"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestCommandsReplaceAndDispose(t *testing.T) {
	api := NewCommandsAPI()
	api.RegisterCommand("demo.cmd", func(...any) (any, error) { return "first", nil })
	d := api.RegisterCommand("demo.cmd", func(...any) (any, error) { return "second", nil })

	got, err := api.ExecuteCommand("demo.cmd")
	if err != nil || got != "second" {
		t.Fatalf("after replace: %v, %v", got, err)
	}

	d.Dispose()
	if _, err := api.ExecuteCommand("demo.cmd"); err == nil {
		t.Fatal("command still registered after dispose")
	}
}

func TestCommandsErrorPropagation(t *testing.T) {
	api := NewCommandsAPI()
	boom := errors.New("handler failed")
	api.RegisterCommand("demo.fail", func(...any) (any, error) { return nil, boom })

	if _, err := api.ExecuteCommand("demo.fail"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestCommandsListing(t *testing.T) {
	api := NewCommandsAPI()
	for _, id := range []string{"z.last", "a.first", "m.mid"} {
		api.RegisterCommand(id, func(...any) (any, error) { return nil, nil })
	}

	want := []string{"a.first", "m.mid", "z.last"}
	if diff := cmp.Diff(want, api.Commands()); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}
