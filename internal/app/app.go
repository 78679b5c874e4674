package app

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabstrip/internal/command"
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/state"
	"github.com/atomicstack/tabstrip/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width int
	// InitialWidth is the detected terminal width used until the first
	// window size message. It is ignored when Width is set.
	InitialWidth int
	ShowFooter   bool
	ScrollStep int
	Policy     state.Policy
	Open       []content.Kind
}

// Engine is the single instance of store, dispatcher and command layer for
// one program run. Only Commands holds the mutating side of the store.
type Engine struct {
	View     state.View
	Bus      dispatcher.Bus
	Commands *command.Commands
}

// NewEngine constructs the engine and opens the configured startup tabs
// through the intent bus.
func NewEngine(cfg Config) (*Engine, error) {
	store := state.NewStore(cfg.Policy)
	bus := dispatcher.New()
	e := &Engine{
		View:     store,
		Bus:      bus,
		Commands: command.New(store, bus),
	}
	for _, kind := range cfg.Open {
		if err := bus.Publish(command.OpenTabKind, command.OpenTab{ContentKind: kind}); err != nil {
			e.Close()
			return nil, fmt.Errorf("open startup tab %s: %w", kind, err)
		}
	}
	return e, nil
}

// Close drops the command subscriptions.
func (e *Engine) Close() {
	if e.Commands != nil {
		e.Commands.Close()
	}
}

// ViewOptions maps the application config onto the view model options.
func (cfg Config) ViewOptions() ui.Options {
	return ui.Options{
		Width:        cfg.Width,
		InitialWidth: cfg.InitialWidth,
		ScrollStep:   cfg.ScrollStep,
		ShowFooter:   cfg.ShowFooter,
	}
}

// Run mounts the view on engine and executes the Bubble Tea program.
func Run(engine *Engine, cfg Config) error {
	model := ui.NewModel(engine.View, engine.Bus, cfg.ViewOptions())
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
