// Package wizardapp exposes a reusable Bubble Tea host for a single analysis
// wizard. It wires the wizard.Controller, observers, dataset watching, and
// result actions behind a simple lifecycle API so binaries can embed the
// interactive workflow without copying UI code.
package wizardapp

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/runlog"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

var (
	// ErrNoAnalysis indicates no analysis was supplied when constructing an App.
	ErrNoAnalysis = errors.New("wizardapp: an analysis must be provided")
	// ErrNoDataset indicates no dataset was supplied when constructing an App.
	ErrNoDataset = errors.New("wizardapp: a dataset must be provided")
	// ErrProgramRunning reports that Start was invoked while the program is already running.
	ErrProgramRunning = errors.New("wizardapp: program already running")
)

// Config controls how an App should be assembled.
type Config struct {
	Analysis          analyses.Analysis
	Dataset           *dataset.Dataset
	DatasetPath       string
	Watcher           *dataset.Watcher
	RunLog            *runlog.Log
	ExportPath        string
	ControllerOptions []wizard.Option
	ProgramOptions    []tea.ProgramOption
}

// Option mutates Config during construction.
type Option func(*Config)

// WithAnalysis sets the analysis the wizard configures and submits.
func WithAnalysis(a analyses.Analysis) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Analysis = a
	}
}

// WithDataset sets the loaded dataset the wizard runs against.
func WithDataset(ds *dataset.Dataset) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Dataset = ds
	}
}

// WithDatasetWatcher makes the app reload path on change notifications and
// reset the wizard when the dataset identity changes.
func WithDatasetWatcher(w *dataset.Watcher, path string) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.Watcher = w
		cfg.DatasetPath = path
	}
}

// WithRunLog records every submission attempt in the given run history.
func WithRunLog(l *runlog.Log) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.RunLog = l
	}
}

// WithExportPath sets the file the export action writes result CSV to.
func WithExportPath(path string) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ExportPath = path
	}
}

// WithControllerOptions appends custom wizard controller options.
func WithControllerOptions(opts ...wizard.Option) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ControllerOptions = append(cfg.ControllerOptions, opts...)
	}
}

// WithProgramOptions appends tea.Program options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(cfg *Config) {
		if cfg == nil {
			return
		}
		cfg.ProgramOptions = append(cfg.ProgramOptions, opts...)
	}
}

// App hosts the Bubble Tea-driven analysis wizard.
type App struct {
	cfg      Config
	mu       sync.Mutex
	program  *tea.Program
	inFlight bool
}

// New constructs an App from the provided options.
func New(opts ...Option) (*App, error) {
	cfg := Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Analysis == nil {
		return nil, ErrNoAnalysis
	}
	if cfg.Dataset == nil {
		return nil, ErrNoDataset
	}
	return &App{cfg: cfg}, nil
}

// Start runs the TUI until the user quits or ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model, err := newModel(a.cfg, ctx)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, a.cfg.ProgramOptions...)

	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return ErrProgramRunning
	}
	a.program = program
	a.inFlight = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.program = nil
		a.inFlight = false
		a.mu.Unlock()
	}()

	_, runErr := program.Run()
	return runErr
}

// Stop signals the running TUI program (if any) to exit.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.program == nil {
		return nil
	}
	a.program.Quit()
	return nil
}
