package vscode

// Version is the editor API level the shim reports to extensions.
const Version = "1.84.0"

// APIOptions configures API assembly.
type APIOptions struct {
	// Registrar receives webview provider registrations; normally the
	// extension host instance.
	Registrar WebviewRegistrar
	// WorkspacePath roots the workspace façade; empty means no folder open.
	WorkspacePath string
	// AppName is reported through the env façade.
	AppName string
	// GlobalState backs machine identity. Required.
	GlobalState *FileMemento
}

// API is the assembled object graph standing in for the editor's module:
// every capability façade, wired to the injected extension host. The host
// arrives by injection, never through a process global.
type API struct {
	Window    *WindowAPI
	Workspace *WorkspaceAPI
	Commands  *CommandsAPI
	TabGroups *TabGroupsAPI
	Env       *EnvAPI
	Version   string
}

// NewAPI wires the capability façades into a single graph an extension can
// use in place of the real editor module.
func NewAPI(opts APIOptions) *API {
	fs := NewFileSystemAPI()
	appName := opts.AppName
	if appName == "" {
		appName = "exthost"
	}
	return &API{
		Window:    NewWindowAPI(opts.Registrar),
		Workspace: NewWorkspaceAPI(opts.WorkspacePath, fs),
		Commands:  NewCommandsAPI(),
		TabGroups: NewTabGroupsAPI(),
		Env:       NewEnvAPI(appName, opts.WorkspacePath, opts.GlobalState),
		Version:   Version,
	}
}

// Dispose tears down façade-owned resources (watchers).
func (a *API) Dispose() {
	a.Workspace.Dispose()
}
