// Copyright 2026 The Typeahead Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the typeahead prompt and IPC server application.

Typeahead provides as-you-type suggestions over a configurable data
source. It can operate as an interactive terminal prompt, or as a
MessagePack IPC server for integration with editors and other hosts.

# Usage

Start the interactive prompt over a word list:

	typeahead -data /path/to/words.txt

Run the IPC server with debug logging:

	typeahead -serve -data /path/to/words.txt -d

The data file holds one entry per line; blank lines and lines starting
with '#' are skipped.

# Configuration

Runtime configuration is managed through a TOML file:

	[widget]
	engine = "strict"
	threshold = 1
	debounce_ms = 120
	max_results = 20

	[list]
	max_visible = 10
	wrap = true

	[server]
	max_limit = 64
	max_query = 60

The config file is automatically created with defaults if it doesn't
exist. A custom path can be given with -config.

# IPC Protocol

Server mode communicates via MessagePack over stdin/stdout. Send a
query request:

	{"id": "req1", "q": "hel", "l": 20}

Receive ordered matches with their highlight positions:

	{"id": "req1", "s": [{"v": "hello", "r": 1, "h": [0, 1, 2]}], "c": 1, "t": 145}

# Command Line Flags

	-data string
	    Word list file to search over
	-config string
	    Custom config file path
	-rebuild-config
	    Recreate the default config file and exit
	-serve
	    Run the MessagePack IPC server instead of the prompt
	-engine string
	    Matching engine: strict, loose or prefix (default from config)
	-limit int
	    Maximum results per search (default from config)
	-min int
	    Minimum query length before searching (default from config)
	-d  Enable debug mode with detailed logging
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"typeahead/internal/logger"
	"typeahead/internal/tui"
	"typeahead/pkg/config"
	"typeahead/pkg/engine"
	"typeahead/pkg/server"
	"typeahead/pkg/source"
	"typeahead/pkg/typeahead"
)

const (
	Version = "0.3.0-beta"
	AppName = "typeahead"
	gh      = "https://github.com/bastiangx/typeahead"
)

// demoWords back the prompt when no -data file is given.
var demoWords = []string{
	"amenity", "america", "apple", "apricot", "avocado",
	"banana", "blueberry", "cherry", "grape", "grapefruit",
	"mango", "melon", "orange", "papaya", "peach",
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, source and widget together and hands control to
// either the prompt or the IPC server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Word list file to search over")
	configPath := flag.String("config", "", "Custom config file path")
	serveMode := flag.Bool("serve", false, "Run the MessagePack IPC server")
	rebuildConfig := flag.Bool("rebuild-config", false, "Recreate the default config file and exit")
	engineName := flag.String("engine", "", "Matching engine: strict, loose or prefix")
	limit := flag.Int("limit", 0, "Maximum results per search")
	minLen := flag.Int("min", 0, "Minimum query length before searching")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Info("Config file recreated with defaults")
		os.Exit(0)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *engineName != "" {
		appConfig.Widget.Engine = *engineName
	}
	if *limit > 0 {
		appConfig.Widget.MaxResults = *limit
	}
	if *minLen > 0 {
		appConfig.Widget.Threshold = *minLen
	}

	src, err := buildSource(*dataPath)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}

	if *serveMode {
		runServer(appConfig, src)
		return
	}
	runPrompt(appConfig, src)
}

// buildSource returns a file-backed source, or the built-in demo words
// when no path was given.
func buildSource(path string) (*source.Source, error) {
	if path == "" {
		log.Warn("No data file specified, using built-in demo words...")
		return source.Strings(demoWords...), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	log.Debugf("Using data file at: %s", path)
	return source.FromFile(path), nil
}

func widgetConfig(appConfig *config.Config, src *source.Source) (typeahead.Config, error) {
	eng, err := engine.FromName(appConfig.Widget.Engine, engine.Options{
		Diacritics: appConfig.Widget.Diacritics,
	})
	if err != nil {
		return typeahead.Config{}, err
	}

	cfg := typeahead.DefaultConfig(src)
	cfg.Logger = logger.New("widget")
	cfg.Engine = eng
	cfg.Diacritics = appConfig.Widget.Diacritics
	cfg.Threshold = appConfig.Widget.Threshold
	cfg.MaxResults = appConfig.Widget.MaxResults
	cfg.Highlight = appConfig.Widget.Highlight
	cfg.MaxVisible = appConfig.List.MaxVisible
	cfg.WrapNavigation = appConfig.List.Wrap
	cfg.IndexPrefix = appConfig.Widget.Engine == engine.NamePrefix
	return cfg, nil
}

// runPrompt starts the interactive terminal frontend. Debounce lives in
// the TUI loop, not the widget.
func runPrompt(appConfig *config.Config, src *source.Source) {
	cfg, err := widgetConfig(appConfig, src)
	if err != nil {
		log.Fatalf("Failed to configure widget: %v", err)
	}

	widget, err := typeahead.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build widget: %v", err)
	}
	defer widget.Close()

	debounce := time.Duration(appConfig.Widget.DebounceMs) * time.Millisecond
	program := tea.NewProgram(tui.New(widget, debounce))
	if _, err := program.Run(); err != nil {
		log.Fatalf("Prompt error: %v", err)
	}
}

// runServer starts the MessagePack IPC loop on stdin/stdout. Rendering
// stays off since the client owns presentation.
func runServer(appConfig *config.Config, src *source.Source) {
	cfg, err := widgetConfig(appConfig, src)
	if err != nil {
		log.Fatalf("Failed to configure widget: %v", err)
	}
	cfg.RenderList = false

	widget, err := typeahead.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build widget: %v", err)
	}
	defer widget.Close()

	log.Debug("spawning IPC")
	srv := server.NewServer(widget, appConfig.Server)

	showStartupInfo(appConfig)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Typeahead ] As-you-type suggestions, anywhere.")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(appConfig *config.Config) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" Typeahead ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("engine: ( %s )", appConfig.Widget.Engine)
	log.Info("init: OK")
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
