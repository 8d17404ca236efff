package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/cocode/playvault/internal/probe"
	"github.com/cocode/playvault/internal/repositories"
	"github.com/cocode/playvault/internal/shared"
	"github.com/cocode/playvault/internal/storage"
	"github.com/cocode/playvault/internal/store"
	"github.com/cocode/playvault/internal/ui"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	store    *store.PlaylistStore
	resolver storage.Resolver
	repo     *repositories.PlaylistRepository
	prober   *probe.Prober
	logger   *log.Logger
	output   io.Writer
	styles   *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Store    *store.PlaylistStore
	Resolver storage.Resolver
	Repo     *repositories.PlaylistRepository
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Resolver == nil {
		opts.Resolver = storage.NewFileResolver()
	}

	return &Runner{
		config:   opts.Config,
		store:    opts.Store,
		resolver: opts.Resolver,
		repo:     opts.Repo,
		prober:   probe.NewProber(opts.Resolver, opts.Logger),
		logger:   opts.Logger,
		output:   opts.Output,
		styles:   ui.DefaultPalette(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, importCommand, listCommand, showCommand, deleteCommand, removeItemCommand, markFailedCommand, probeCommand, historyCommand, watchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
