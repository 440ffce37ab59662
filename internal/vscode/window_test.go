package vscode

import (
	"path/filepath"
	"testing"
)

// recordingRegistrar captures provider registrations for assertions.
type recordingRegistrar struct {
	registered   []string
	unregistered []string
}

func (r *recordingRegistrar) RegisterWebviewProvider(viewID string, _ WebviewViewProvider) {
	r.registered = append(r.registered, viewID)
}

func (r *recordingRegistrar) UnregisterWebviewProvider(viewID string) {
	r.unregistered = append(r.unregistered, viewID)
}

type nopProvider struct{}

func (nopProvider) ResolveWebviewView(WebviewView, CancellationToken) error { return nil }

func TestWindowProviderRegistration(t *testing.T) {
	reg := &recordingRegistrar{}
	w := NewWindowAPI(reg)

	d := w.RegisterWebviewViewProvider("demo.view", nopProvider{})
	if len(reg.registered) != 1 || reg.registered[0] != "demo.view" {
		t.Fatalf("registered = %v", reg.registered)
	}

	d.Dispose()
	if len(reg.unregistered) != 1 || reg.unregistered[0] != "demo.view" {
		t.Fatalf("unregistered = %v", reg.unregistered)
	}
}

func TestWindowMessages(t *testing.T) {
	w := NewWindowAPI(&recordingRegistrar{})

	var observed []ShownMessage
	w.OnDidShowMessage(func(m ShownMessage) { observed = append(observed, m) })

	if got := w.ShowInformationMessage("hello"); got != "" {
		t.Fatalf("no-item message returned %q", got)
	}
	if got := w.ShowWarningMessage("pick one", "Retry", "Cancel"); got != "Retry" {
		t.Fatalf("selection = %q, want first item", got)
	}
	w.ShowErrorMessage("boom")

	messages := w.Messages()
	if len(messages) != 3 {
		t.Fatalf("messages = %d", len(messages))
	}
	if messages[0].Severity != MessageInfo || messages[1].Severity != MessageWarning || messages[2].Severity != MessageError {
		t.Fatalf("severities = %+v", messages)
	}
	if len(observed) != 3 {
		t.Fatalf("observer saw %d messages", len(observed))
	}
}

func TestWindowTerminalFactory(t *testing.T) {
	w := NewWindowAPI(&recordingRegistrar{})

	// Without a factory, terminals are inert stubs.
	stub := w.CreateTerminal(TerminalOptions{Name: "plain"})
	if stub.Name() != "plain" {
		t.Fatalf("stub name = %s", stub.Name())
	}
	stub.SendText("ignored", true)
	stub.Dispose()

	var factoryCalls int
	w.SetTerminalFactory(func(opts TerminalOptions) Terminal {
		factoryCalls++
		return &stubTerminal{name: opts.Name + "-real"}
	})
	real := w.CreateTerminal(TerminalOptions{Name: "shell"})
	if factoryCalls != 1 || real.Name() != "shell-real" {
		t.Fatalf("factory calls = %d, name = %s", factoryCalls, real.Name())
	}
}

func TestOutputChannelBuffering(t *testing.T) {
	w := NewWindowAPI(&recordingRegistrar{})
	ch := w.CreateOutputChannel("build")
	if ch.Name() != "build" {
		t.Fatalf("Name = %s", ch.Name())
	}

	ch.Append("partial ")
	ch.AppendLine("line")
	ch.AppendLine("second")
	lines := ch.Lines()
	if len(lines) != 2 || lines[0] != "partial line" || lines[1] != "second" {
		t.Fatalf("lines = %v", lines)
	}

	ch.Clear()
	if len(ch.Lines()) != 0 {
		t.Fatal("Clear left lines behind")
	}

	ch.Dispose()
	ch.AppendLine("after dispose")
	if len(ch.Lines()) != 0 {
		t.Fatal("disposed channel recorded output")
	}
}

func TestEnvMachineIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-state.json")
	state, err := OpenMemento(path)
	if err != nil {
		t.Fatalf("OpenMemento: %v", err)
	}

	env := NewEnvAPI("exthost", "/ws", state)
	if env.MachineID == "" || env.SessionID == "" {
		t.Fatal("identifiers not minted")
	}

	// MachineID is stable across restarts of the same storage root;
	// SessionID is not.
	again, err := OpenMemento(path)
	if err != nil {
		t.Fatalf("reopen memento: %v", err)
	}
	env2 := NewEnvAPI("exthost", "/ws", again)
	if env2.MachineID != env.MachineID {
		t.Fatalf("machine id changed: %s vs %s", env.MachineID, env2.MachineID)
	}
	if env2.SessionID == env.SessionID {
		t.Fatal("session id reused")
	}
}

func TestEnvClipboard(t *testing.T) {
	state, err := OpenMemento(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("OpenMemento: %v", err)
	}
	env := NewEnvAPI("exthost", "/ws", state)
	env.ClipboardWriteText("copied")
	if env.ClipboardReadText() != "copied" {
		t.Fatalf("clipboard = %q", env.ClipboardReadText())
	}
}
