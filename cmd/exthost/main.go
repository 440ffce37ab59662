// exthost runs a headless extension host: it loads an extension, serves an
// attach endpoint for UI front-ends, and drives tasks through the relay.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xde-mcp/zgsm-sub005/internal/config"
	"github.com/xde-mcp/zgsm-sub005/internal/history"
	"github.com/xde-mcp/zgsm-sub005/internal/host"
	"github.com/xde-mcp/zgsm-sub005/internal/ipc"
	"github.com/xde-mcp/zgsm-sub005/internal/logging"
	"github.com/xde-mcp/zgsm-sub005/internal/term"
)

// version is the CLI build version.
const version = "0.1.0"

func main() {
	logging.Setup()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "exthost",
		Short:         "Headless extension host",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newHistoryCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the exthost version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "exthost", version)
		},
	}
}

// newRunCmd activates the extension, serves attach, and runs one task.
func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run [prompt]",
		Short: "Run a single task through the extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runHost(cmd.Context(), cfg, args[0])
		},
	}
}

// newServeCmd activates the extension and serves attach until interrupted.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the extension for interactive front-ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runHost(cmd.Context(), cfg, "")
		},
	}
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent task runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.HistoryPath == "" {
				return errors.New("no history path configured")
			}
			store, err := history.Open(cfg.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				outcome := run.Outcome
				if outcome == "" {
					outcome = "running"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-13s  %s\n", run.StartedAt, outcome, run.Prompt)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

// runHost assembles the host, activates the extension, and serves attach.
// With a prompt, it runs that one task and exits; without, it serves until
// a signal arrives.
func runHost(ctx context.Context, cfg *config.Config, prompt string) error {
	var recorder host.TaskRecorder
	var store *history.Store
	if cfg.HistoryPath != "" {
		var err error
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	h, err := host.New(host.Options{
		ExtensionPath: cfg.ExtensionPath,
		WorkspacePath: cfg.WorkspacePath,
		StorageDir:    cfg.StorageDir,
		ViewID:        cfg.ViewID,
		AppName:       "exthost",
		Recorder:      recorder,
		InstallGlobal: true,
	})
	if err != nil {
		return err
	}
	defer h.Dispose()

	if cfg.EnableTerminals {
		manager := term.NewManager(term.ManagerConfig{
			DefaultShell: cfg.DefaultShell,
			WorkDir:      cfg.WorkspacePath,
		})
		defer manager.CloseAll()
		h.API().Window.SetTerminalFactory(manager.TerminalFactory())
	}

	ext, err := loadExtension(cfg)
	if err != nil {
		return err
	}
	if err := h.Activate(ext); err != nil {
		return err
	}

	var authority *ipc.TokenAuthority
	if cfg.AuthSecret != "" {
		authority = ipc.NewTokenAuthority(cfg.AuthSecret, cfg.AuthAudience)
	}
	server := ipc.NewServer(h, ipc.ServerOptions{Addr: cfg.ListenAddr, Authority: authority})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	if prompt != "" {
		group.Go(func() error {
			defer stop()
			taskCtx, cancel := context.WithTimeout(ctx, cfg.ReadyTimeout+cfg.TaskTimeout)
			defer cancel()
			return h.RunTask(taskCtx, prompt)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadExtension resolves the configured extension: a registered name takes
// priority, then interpreted source at the extension path.
func loadExtension(cfg *config.Config) (host.Extension, error) {
	if cfg.ExtensionName != "" {
		return host.Load(cfg.ExtensionName)
	}
	if cfg.ExtensionPath != "" {
		return host.LoadInterpreted(cfg.ExtensionPath)
	}
	return nil, errors.New("no extension configured: set extensionName or extensionPath")
}
