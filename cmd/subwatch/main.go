package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tinytelemetry/subwatch/internal/apiclient"
	"github.com/tinytelemetry/subwatch/internal/monitor"
	"github.com/tinytelemetry/subwatch/internal/telemetry"
	"github.com/tinytelemetry/subwatch/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var apiURL string
	var once bool
	var refresh bool
	var check bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/subwatch/config.yml)")
	flag.StringVar(&apiURL, "api-url", "", "override the backend base URL")
	flag.BoolVar(&once, "once", false, "fetch once, print the result and exit")
	flag.BoolVar(&refresh, "refresh", false, "with -once, trigger a refresh after the fetch")
	flag.BoolVar(&check, "check", false, "probe the backend health and count endpoints and exit")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Subwatch - Submission Monitor\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
		if err := cfg.validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(run(cfg, once, refresh, check))
}

func run(cfg cliConfig, once, refresh, check bool) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	shutdown, err := telemetry.Setup(ctx, "subwatch")
	if err != nil {
		log.Printf("subwatch: telemetry disabled: %v", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("subwatch: telemetry shutdown: %v", err)
		}
	}()

	client := apiclient.New(cfg.APIURL, apiclient.WithTimeout(cfg.RequestTimeout))

	switch {
	case check:
		if err := runCheck(ctx, client, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0

	case once:
		opts := monitor.DeriveOptions{TimeFormat: cfg.TimeFormat, Location: cfg.Location, Now: time.Now()}
		if !runOnce(ctx, client, opts, refresh, os.Stdout) {
			return 1
		}
		return 0
	}

	if err := runTUI(cfg, client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(cfg cliConfig, client *apiclient.Client) error {
	if err := tui.InitializeSkin(cfg.Skin); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	monitorModel := tui.NewMonitorModel(client, tui.Options{
		TimeFormat:  cfg.TimeFormat,
		Location:    cfg.Location,
		SourceLabel: client.BaseURL(),
	})
	app := tui.NewApp(tui.NewMonitorPage(monitorModel))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal (try -once)")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
