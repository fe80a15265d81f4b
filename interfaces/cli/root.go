// Package cli is the archibridge command line: CSV import and export, image
// storage and archive conversion on model files, and the API server.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"archibridge/application/commands"
	"archibridge/infrastructure/config"
	"archibridge/infrastructure/di"
)

// app holds the state shared by all subcommands of one invocation
type app struct {
	configPath string
	verbose    bool

	cfg       *config.Config
	container *di.Container
	cleanup   func()
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "archibridge",
		Short:         "Round-trip ArchiMate models through CSV and manage their images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default: $"+config.FileEnvVar+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newImageCmd(a),
		newConvertCmd(a),
		newServeCmd(a),
		newTokenCmd(a),
	)
	return root
}

// Execute runs the command tree against args
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	// PersistentPostRun is skipped when a command fails
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) init() error {
	path := a.configPath
	if path == "" {
		return a.load(config.LoadConfig)
	}
	return a.load(func() (*config.Config, error) { return config.Load(path) })
}

func (a *app) load(loader func() (*config.Config, error)) error {
	cfg, err := loader()
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	container, cleanup, err := di.InitializeContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	a.cfg, a.container, a.cleanup = cfg, container, cleanup
	return nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// open loads the model file at path into the workspace and returns its id
func (a *app) open(ctx context.Context, path string) (string, error) {
	cmd := &commands.OpenModelCommand{Path: path}
	if err := a.container.CommandBus.Send(ctx, cmd); err != nil {
		return "", err
	}
	return cmd.ModelID, nil
}

// save writes the model to path, or back to the file it came from
func (a *app) save(ctx context.Context, modelID, path string) (string, error) {
	cmd := &commands.SaveModelCommand{ModelID: modelID, Path: path}
	if err := a.container.CommandBus.Send(ctx, cmd); err != nil {
		return "", err
	}
	return cmd.SavedTo, nil
}
