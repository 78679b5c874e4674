package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tabstrip/internal/app"
	"github.com/atomicstack/tabstrip/internal/config"
	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/state"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	terminal := probeTerminal(standardDescriptors())
	runtimeCfg.App.InitialWidth = initialStripWidth(runtimeCfg.App, terminal)

	engine, err := app.NewEngine(runtimeCfg.App)
	if err != nil {
		fail(err)
	}
	events.App.Start(startupTracePayload(runtimeCfg, engine.View.Snapshot(), terminal))

	err = app.Run(engine, runtimeCfg.App)
	final := engine.View.Snapshot()
	events.App.Stop(final.ActiveTabID, len(final.Tabs), err)
	engine.Close()
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// stripTab is the trace form of one tab in the startup strip.
type stripTab struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

type stripSummary struct {
	Active int        `json:"active"`
	Offset int        `json:"offset"`
	Tabs   []stripTab `json:"tabs"`
}

func summarizeStrip(snap state.Snapshot) stripSummary {
	tabs := make([]stripTab, len(snap.Tabs))
	for i, tab := range snap.Tabs {
		tabs[i] = stripTab{ID: tab.ID, Kind: tab.Kind.String(), Name: tab.Name}
	}
	return stripSummary{Active: snap.ActiveTabID, Offset: snap.ScrollOffset, Tabs: tabs}
}

// startupTracePayload bundles the resolved options, the strip the engine
// starts with, and the terminal the strip will be drawn on.
func startupTracePayload(cfg config.Config, snap state.Snapshot, terminal terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":         cfg.Args,
		"flags":        flags,
		"policy":       cfg.App.Policy.String(),
		"strip":        summarizeStrip(snap),
		"stripWidth":   cfg.App.Width,
		"initialWidth": cfg.App.InitialWidth,
		"terminal":     terminal,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// initialStripWidth picks the width the strip is windowed to before the
// first resize event: none when -width pins it, else the terminal's.
func initialStripWidth(cfg app.Config, terminal terminalInfo) int {
	if cfg.Width > 0 || terminal.Source == "" {
		return 0
	}
	return terminal.Width
}

type descriptor struct {
	name string
	fd   int
}

// standardDescriptors lists stdout first since that is where the strip is drawn.
func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
		{"stdin", int(os.Stdin.Fd())},
	}
}

type terminalInfo struct {
	Source string   `json:"source,omitempty"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

var (
	isTerminal   = term.IsTerminal
	terminalSize = term.GetSize
)

// probeTerminal reports the size of the first descriptor that is a terminal.
func probeTerminal(fds []descriptor) terminalInfo {
	var info terminalInfo
	for _, d := range fds {
		if d.fd < 0 || !isTerminal(d.fd) {
			continue
		}
		width, height, err := terminalSize(d.fd)
		if err != nil {
			info.Errors = append(info.Errors, d.name+": "+err.Error())
			continue
		}
		info.Source, info.Width, info.Height = d.name, width, height
		break
	}
	return info
}
