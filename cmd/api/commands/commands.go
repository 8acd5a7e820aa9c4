package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mobilectl/core/internal/adapters/cli"
	"github.com/mobilectl/core/internal/adapters/plugin"
	"github.com/mobilectl/core/internal/adapters/repository"
	"github.com/mobilectl/core/internal/adapters/system"
	"github.com/mobilectl/core/internal/application/services"
	"github.com/mobilectl/core/internal/infrastructure/config"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/infrastructure/metrics"
	"github.com/mobilectl/core/internal/infrastructure/server"
)

// ErrActionFailed is returned by exec when the action reports failure. The
// envelope has already been printed, so callers only set the exit status.
var ErrActionFailed = errors.New("action failed")

const shutdownTimeout = 10 * time.Second

// Version is overridden at build time with -ldflags.
var Version = "dev"

// app is the wired object graph shared by every command
type app struct {
	cfg        *config.Config
	logger     *logger.Logger
	fs         afero.Fs
	controller *system.Controller
	metrics    *metrics.Metrics
	actions    *services.ActionService
}

// bootstrap loads configuration and wires the store, controller and services.
// Commands that print results to stdout pass quiet so logs go to stderr.
func bootstrap(cmd *cobra.Command, fs afero.Fs, quiet bool) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil && dryRun {
		cfg.System.DryRun = true
	}
	if quiet && cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := repository.NewContactRepository(fs, cfg.Phonebook.File, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open phonebook: %w", err)
	}

	var runner system.Runner = system.NewExecRunner()
	if cfg.System.DryRun {
		runner = system.NewDryRunRunner(appLogger)
	}
	platform := system.ResolvePlatform(cfg.System.Platform)
	controller := system.NewController(platform, runner, cfg.System.CommandTimeout, appLogger)
	if !controller.Supported() {
		appLogger.Warnw("Device actions are unavailable on this platform", "platform", platform)
	}

	m := metrics.New()

	phonebook := services.NewPhonebookService(repo, appLogger)
	device := services.NewDeviceService(controller, appLogger)

	return &app{
		cfg:        cfg,
		logger:     appLogger,
		fs:         fs,
		controller: controller,
		metrics:    m,
		actions:    services.NewActionService(phonebook, device, m, appLogger),
	}, nil
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start the HTTP API server exposing the action endpoint, REST shortcuts, health checks and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, afero.NewOsFs(), false)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, a)
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	srv, err := server.New(a.cfg, server.Dependencies{
		Actions: a.actions,
		Device:  a.controller,
		Fs:      a.fs,
		Metrics: a.metrics,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	a.logger.Infow("Starting mobilectl API server",
		"address", a.cfg.Server.Address(),
		"environment", a.cfg.App.Environment,
		"platform", a.controller.PlatformName(),
		"dry_run", a.cfg.System.DryRun,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("Server stopped")
	return nil
}

// NewExecCommand creates the exec command
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <action> [key=value ...]",
		Short: "Run a single action and print the result",
		Example: `  mobilectl exec phonebook_add contact_name=Bob phone_number=555-0100
  mobilectl exec volume volume_level=40
  mobilectl exec theme theme_mode=dark`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, afero.NewOsFs(), true)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			result, err := cli.NewRunner(a.actions, cmd.OutOrStdout()).Run(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if !result.Success {
				return ErrActionFailed
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Log platform commands instead of running them")
	return cmd
}

// NewPluginCommand creates the plugin command with its subcommands
func NewPluginCommand() *cobra.Command {
	pluginCmd := &cobra.Command{
		Use:   "plugin",
		Short: "Automation host plugin commands",
		Long:  "Run as a tool inside an automation host, or print the tool manifest",
	}

	invokeCmd := &cobra.Command{
		Use:   "invoke",
		Short: "Read one tool invocation from stdin and write the messages to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd, afero.NewOsFs(), true)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			return plugin.NewTool(a.actions, a.logger).Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	invokeCmd.Flags().Bool("dry-run", false, "Log platform commands instead of running them")

	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the tool manifest as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return plugin.NewManifest(Version).Write(cmd.OutOrStdout())
		},
	}

	pluginCmd.AddCommand(invokeCmd, manifestCmd)
	return pluginCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print mobilectl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mobilectl %s\n", Version)
		},
	}
}
