package vscode

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestContext(t *testing.T, extensionPath string) *ExtensionContext {
	t.Helper()
	ctx, err := NewExtensionContext(ExtensionContextOptions{
		ExtensionPath: extensionPath,
		WorkspacePath: filepath.Join(t.TempDir(), "project"),
		StorageDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewExtensionContext: %v", err)
	}
	return ctx
}

func TestContextCreatesStorageLayout(t *testing.T) {
	storageDir := t.TempDir()
	workspace := filepath.Join(t.TempDir(), "ws")
	ctx, err := NewExtensionContext(ExtensionContextOptions{
		ExtensionPath: t.TempDir(),
		WorkspacePath: workspace,
		StorageDir:    storageDir,
	})
	if err != nil {
		t.Fatalf("NewExtensionContext: %v", err)
	}

	wantDirs := []string{
		filepath.Join(storageDir, "global-storage"),
		filepath.Join(storageDir, "workspace-storage", WorkspaceHash(workspace)),
		filepath.Join(storageDir, "logs"),
	}
	for _, dir := range wantDirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("storage dir %s missing: %v", dir, err)
		}
	}
	if ctx.GlobalStoragePath != wantDirs[0] {
		t.Fatalf("GlobalStoragePath = %s", ctx.GlobalStoragePath)
	}
}

func TestWorkspaceHashStable(t *testing.T) {
	a := WorkspaceHash("/home/user/project")
	b := WorkspaceHash("/home/user/project/")
	if a != b {
		t.Fatalf("hash not stable across trailing slash: %s vs %s", a, b)
	}
	if a == WorkspaceHash("/home/user/other") {
		t.Fatal("different paths share a hash")
	}
	if len(a) != 16 {
		t.Fatalf("hash length = %d, want 16 hex chars", len(a))
	}
}

func TestContextManifestLoading(t *testing.T) {
	extDir := t.TempDir()
	manifest := `{"name": "demo", "version": "1.2.3", "publisher": "acme"}`
	if err := os.WriteFile(filepath.Join(extDir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	ctx := newTestContext(t, extDir)
	if ctx.Manifest == nil {
		t.Fatal("manifest not loaded")
	}
	if ctx.Manifest.Name != "demo" || ctx.Manifest.Version != "1.2.3" {
		t.Fatalf("manifest = %+v", ctx.Manifest)
	}
}

func TestContextMissingManifestTolerated(t *testing.T) {
	ctx := newTestContext(t, filepath.Join(t.TempDir(), "no-such-extension"))
	if ctx.Manifest != nil {
		t.Fatalf("expected nil manifest, got %+v", ctx.Manifest)
	}
}

func TestContextDisposeOrderAndIsolation(t *testing.T) {
	ctx := newTestContext(t, t.TempDir())

	var order []int
	ctx.Subscribe(DisposeFunc(func() { order = append(order, 1) }))
	ctx.Subscribe(DisposeFunc(func() {
		order = append(order, 2)
		panic("bad subscription")
	}))
	ctx.Subscribe(DisposeFunc(func() { order = append(order, 3) }))

	ctx.Dispose()
	ctx.Dispose() // idempotent

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("dispose order = %v, want [1 2 3]", order)
	}
	if n := ctx.SubscriptionCount(); n != 0 {
		t.Fatalf("SubscriptionCount after dispose = %d", n)
	}
}

func TestContextStateRoundTrip(t *testing.T) {
	storageDir := t.TempDir()
	workspace := filepath.Join(t.TempDir(), "ws")
	opts := ExtensionContextOptions{
		ExtensionPath: t.TempDir(),
		WorkspacePath: workspace,
		StorageDir:    storageDir,
	}
	ctx, err := NewExtensionContext(opts)
	if err != nil {
		t.Fatalf("NewExtensionContext: %v", err)
	}
	if err := ctx.GlobalState.Update("g", "global"); err != nil {
		t.Fatalf("global update: %v", err)
	}
	if err := ctx.WorkspaceState.Update("w", "workspace"); err != nil {
		t.Fatalf("workspace update: %v", err)
	}

	// A second context over the same roots sees the persisted state.
	again, err := NewExtensionContext(opts)
	if err != nil {
		t.Fatalf("second NewExtensionContext: %v", err)
	}
	if got := again.GlobalState.Get("g"); got != "global" {
		t.Fatalf("global state = %v", got)
	}
	if got := again.WorkspaceState.Get("w"); got != "workspace" {
		t.Fatalf("workspace state = %v", got)
	}
}
