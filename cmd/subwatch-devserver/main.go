package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tinytelemetry/subwatch/internal/devserver"
	"github.com/tinytelemetry/subwatch/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var addr string
	var scriptPath string
	var showVersion bool

	flag.StringVar(&addr, "addr", model.DefaultDevServerAddr, "listen address")
	flag.StringVar(&scriptPath, "script", "", "YAML fixture to replay (default is the built-in script)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Subwatch Dev Server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		return
	}

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	script := devserver.DefaultScript()
	if scriptPath != "" {
		var err error
		script, err = devserver.LoadScript(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := runServer(addr, scriptPath, script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(addr, scriptPath string, script devserver.Script) error {
	srv := newServer(addr, script)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start dev server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	printStartupBanner(srv.Addr(), scriptPath, len(script.Refreshes))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-sigCh:
			fmt.Println("\nShutting down...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Printf("devserver: shutdown: %v", err)
		return err
	}
	return nil
}

// newServer builds the dev backend with gin in release mode so route debug
// output does not interleave with the banner.
func newServer(addr string, script devserver.Script) *devserver.Server {
	gin.SetMode(gin.ReleaseMode)
	return devserver.NewServer(addr, script)
}

func printStartupBanner(addr, scriptPath string, steps int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	base := "http://" + addr

	script := "built-in"
	if scriptPath != "" {
		script = scriptPath
	}

	separator := dim.Render("    ─────────────────────────────────")
	lines := []string{
		"",
		"    " + bold.Render("Subwatch Dev Server") + " " + dim.Render("v"+version),
		"",
		separator,
		"",
		fmt.Sprintf("    %s  Count          %s", check, cyan.Render("GET  "+base+model.PathCount)),
		fmt.Sprintf("    %s  Refresh        %s", check, cyan.Render("POST "+base+model.PathRefresh)),
		fmt.Sprintf("    %s  Health         %s", check, cyan.Render("GET  "+base+model.PathHealth)),
		"",
		fmt.Sprintf("    %s  Script         %s (%d refresh steps)", check, dim.Render(script), steps),
		"",
		separator,
		"",
		"    " + dim.Render("Point subwatch at it with ") + yellow.Render("SUBWATCH_API_URL="+base),
		"    " + dim.Render("Press ") + yellow.Render("Ctrl+C") + dim.Render(" to stop"),
		"",
	}

	fmt.Println(strings.Join(lines, "\n"))
}
