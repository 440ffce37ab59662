package term

import (
	"testing"

	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

func TestCreateSessionBadShell(t *testing.T) {
	m := NewManager(ManagerConfig{DefaultShell: "/no/such/shell"})
	if _, err := m.CreateSession("", "", 24, 80); err == nil {
		t.Fatal("spawn of a missing shell succeeded")
	}
	if m.Count() != 0 {
		t.Fatalf("Count = %d after failed spawn", m.Count())
	}
}

func TestFactoryFallsBackOnSpawnFailure(t *testing.T) {
	m := NewManager(ManagerConfig{})
	factory := m.TerminalFactory()

	// A failed spawn yields an inert terminal, never a nil or an error.
	terminal := factory(vscode.TerminalOptions{
		Name:      "broken",
		ShellPath: "/no/such/shell",
	})
	if terminal == nil {
		t.Fatal("factory returned nil")
	}
	if terminal.Name() != "broken" {
		t.Fatalf("Name = %s", terminal.Name())
	}
	terminal.SendText("ignored", true)
	terminal.Dispose()
	if m.Count() != 0 {
		t.Fatalf("failed terminal registered a session: %d", m.Count())
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := NewManager(ManagerConfig{DefaultShell: "/bin/sh"})
	session, err := m.CreateSession("", t.TempDir(), 30, 100)
	if err != nil {
		t.Skipf("no usable shell in test environment: %v", err)
	}
	if m.Count() != 1 {
		t.Fatalf("Count = %d", m.Count())
	}
	if got, ok := m.Session(session.ID); !ok || got != session {
		t.Fatal("session not retrievable by id")
	}
	rows, cols := session.Size()
	if rows != 30 || cols != 100 {
		t.Fatalf("size = %dx%d", rows, cols)
	}

	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Close is idempotent and deregisters the session.
	if err := session.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if m.Count() != 0 {
		t.Fatalf("Count after close = %d", m.Count())
	}
}

func TestCloseAll(t *testing.T) {
	m := NewManager(ManagerConfig{DefaultShell: "/bin/sh"})
	if _, err := m.CreateSession("", "", 0, 0); err != nil {
		t.Skipf("no usable shell in test environment: %v", err)
	}
	if _, err := m.CreateSession("", "", 0, 0); err != nil {
		t.Fatalf("second CreateSession: %v", err)
	}
	m.CloseAll()
	if m.Count() != 0 {
		t.Fatalf("Count after CloseAll = %d", m.Count())
	}
}
