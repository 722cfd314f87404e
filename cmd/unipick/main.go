// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the unipick character picker.

unipick finds Unicode characters by name, alias or codepoint. It can run as
a MessagePack IPC server behind a launcher, as an interactive terminal
picker, or as a line-based CLI for testing and debugging.

# Usage

Pick a character interactively; the result is printed on stdout:

	unipick -t

Copy the picked character to the clipboard as well:

	unipick -t -copy

Serve a launcher over stdin/stdout with debug logs on stderr:

	unipick -d

Query line by line, ":N" picks result N:

	unipick -c -limit 10

# Data

The Unicode tables are embedded. -data points at a directory holding
UnicodeData.txt (optionally gzipped), NameAliases.txt and Blocks.txt to use a
different Unicode version. User aliases are read from the YAML file named by
catalog.aliases_file, looked up in the config dir and then in
$XDG_CONFIG_DIRS:

	extends: [base.yaml]
	aliases:
	  U+2603: [frosty]

# Configuration

The TOML config is created with defaults on first run:

	[search]
	default_limit = 32
	max_limit = 256
	suggest_corrections = true
	categories = []

	[server]
	watch_config = true
	debounce_ms = 100

In server mode the file is watched and changes apply to the next request.

# Command Line Flags

	-version  Show current version
	-d        Enable debug logging
	-c        Run the line-based CLI
	-t        Run the interactive picker
	-data     Directory with the Unicode data files
	-config   Path to a config file
	-limit    Number of results for -c and -t
	-copy     Copy picked characters to the clipboard
	-json     Log as JSON
	-rebuild-config  Overwrite the default config file with defaults and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/internal/cli"
	"github.com/bastiangx/unipick/internal/logger"
	"github.com/bastiangx/unipick/internal/tui"
	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/config"
	"github.com/bastiangx/unipick/pkg/mode"
	"github.com/bastiangx/unipick/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = utils.AppName
	gh      = "https://github.com/bastiangx/unipick"
)

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

// main only wires packages together; the picker logic lives in pkg/.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("t", false, "Run the interactive picker")
	dataDir := flag.String("data", "", "Directory containing UnicodeData.txt (default: embedded tables)")
	configFile := flag.String("config", "", "Path to a custom config file")
	limit := flag.Int("limit", 0, "Number of results to show (default from config)")
	copyPick := flag.Bool("copy", false, "Copy picked characters to the clipboard")
	jsonLogs := flag.Bool("json", false, "Log as JSON")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(AppName, *debugMode, *jsonLogs)
	if !*debugMode {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	if *debugMode {
		logRuntimeInfo(pathResolver)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	source := mode.Source{
		AliasesFile: appConfig.Catalog.AliasesFile,
		SearchDirs:  pathResolver.AliasSearchDirs(),
	}
	if dir := firstNonEmpty(*dataDir, appConfig.Catalog.DataDir); dir != "" {
		resolved, err := pathResolver.GetDataDir(dir)
		if err != nil {
			log.Fatalf("Failed to resolve data dir:(%v)", err)
		}
		source.DataDir = resolved
		log.Debugf("Using data dir at: %s", resolved)
	}

	if *cliMode || *tuiMode {
		runInteractive(source, appConfig, *tuiMode, *limit, *copyPick || appConfig.CLI.CopyOnActivate)
		return
	}

	sigHandler()

	loader := config.NewLoader(configPath, appConfig)
	defer loader.Close()
	if configPath != "" && appConfig.Server.WatchConfig {
		debounce := time.Duration(appConfig.Server.DebounceMS) * time.Millisecond
		if err := loader.Watch(debounce); err != nil {
			log.Warnf("Config changes will not be picked up: %v", err)
		} else {
			go logReloadErrors(loader)
		}
	}

	srv := server.NewServer(source.IndexFunc(), loader)
	showStartupInfo(source)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runInteractive starts the picker or the CLI loop with a fixed page size.
func runInteractive(source mode.Source, cfg *config.Config, picker bool, limit int, copyPick bool) {
	log.SetReportTimestamp(false)
	if limit <= 0 {
		limit = cfg.CLI.DefaultLimit
	}
	limit = cfg.Limit(limit)
	log.Debug("Input info:", "limit", limit, "copy", copyPick, "picker", picker)

	m := mode.New(source.IndexFunc(), mode.Config{
		Limit:  func() int { return limit },
		Search: cfg.SearchOptions(),
	})

	if picker {
		if err := tui.Run(m, copyPick, os.Stdout); err != nil {
			log.Fatalf("Picker error: %v", err)
		}
		return
	}
	if err := cli.NewInputHandler(m, os.Stdin, os.Stdout, copyPick).Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

func logReloadErrors(loader *config.Loader) {
	for err := range loader.Errors() {
		log.Warnf("Config reload failed, keeping previous values: %v", err)
	}
}

func logRuntimeInfo(pr *utils.PathResolver) {
	info := pr.GetRuntimeInfo()
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Debug("runtime", k, info[k])
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ unipick ] Find any Unicode character by name")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo writes basic info about the process to stderr.
func showStartupInfo(source mode.Source) {
	data := source.DataDir
	if data == "" {
		data = "embedded"
	}
	log.Info("unipick server",
		"version", Version,
		"pid", os.Getpid(),
		"data", data,
		"status", "ready")
}
