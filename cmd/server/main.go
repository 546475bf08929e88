package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/server"
	"github.com/GriffinCanCode/drive-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

var errNotAccessible = errors.New("proton drive is not accessible")

type options struct {
	configPath string
	root       string
	transport  string
	dev        bool
}

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	opts := &options{}

	serve := func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), opts, stdin, cmd.OutOrStdout())
	}

	rootCmd := &cobra.Command{
		Use:          "proton-drive-mcp",
		Short:        "MCP server exposing a local Proton Drive folder",
		Version:      version,
		SilenceUsage: true,
		RunE:         serve,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("DRIVE_CONFIG"), "Config file (.toml, .yaml)")
	flags.StringVar(&opts.root, "root", "", "Proton Drive folder (overrides PROTON_DRIVE_PATH)")
	flags.StringVar(&opts.transport, "transport", "", "Transport: stdio or http (overrides MCP_TRANSPORT)")
	flags.BoolVar(&opts.dev, "dev", false, "Development logging (debug level, console format)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve MCP on the configured transport (default)",
		Args:  cobra.NoArgs,
		RunE:  serve,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report whether the Proton Drive folder is mounted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, cmd.OutOrStdout())
		},
	})

	return rootCmd
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.root != "" {
		cfg.Drive.Path = opts.root
	}
	if opts.transport != "" {
		cfg.Transport.Mode = opts.transport
	}
	if opts.dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config, builds the logger and resolves the drive root once
func setup(opts *options) (*config.Config, *logging.Logger, paths.Root, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, paths.Root{}, err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, nil, paths.Root{}, fmt.Errorf("create logger: %w", err)
	}

	resolution := paths.NewResolver(cfg.Drive.Path).Resolve()
	root, err := paths.NewRoot(resolution.Path)
	if err != nil {
		return nil, nil, paths.Root{}, fmt.Errorf("resolve drive root: %w", err)
	}

	exists, _ := afero.DirExists(afero.NewOsFs(), root.Path())
	logger.Info("Proton Drive MCP server starting",
		zap.String("version", version),
		zap.String("platform", runtime.GOOS),
		zap.String("root", root.Path()),
		zap.String("source", string(resolution.Source)),
		zap.Bool("exists", exists),
	)
	return cfg, logger, root, nil
}

func runServe(ctx context.Context, opts *options, stdin io.Reader, stdout io.Writer) error {
	cfg, logger, root, err := setup(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(server.Options{
		Config:  cfg,
		Logger:  logger,
		Root:    root,
		Version: version,
	})
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		return err
	}
	defer srv.Close()

	if err := srv.Run(ctx, stdin, stdout); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

func runCheck(ctx context.Context, opts *options, out io.Writer) error {
	_, logger, root, err := setup(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()

	status := filesystem.New(root).MountStatus(ctx)
	data, err := sonic.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mount status: %w", err)
	}
	fmt.Fprintln(out, string(data))

	if !status.Accessible {
		return errNotAccessible
	}
	return nil
}
