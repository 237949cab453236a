package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/glass-forest/internal/config"
	"github.com/jwebster45206/glass-forest/internal/logger"
	"github.com/jwebster45206/glass-forest/internal/services"
	"github.com/jwebster45206/glass-forest/internal/session"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
)

func main() {
	cfg := config.Load()

	// The TUI owns the terminal; logs go to LOG_FILE when set, otherwise nowhere.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logOut = f
	}
	log := logger.SetupWriter(cfg, logOut)

	world, err := scenario.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}
	for _, issue := range world.Validate() {
		log.Warn("World validation issue", "issue", issue.Error())
	}

	ctx := context.Background()
	var transcript services.Transcript = services.NoopTranscript{}
	if cfg.TranscriptRedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rt, err := services.NewRedisTranscript(pingCtx, cfg.TranscriptRedisURL, log)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not connect to transcript Redis: %v\n", err)
			os.Exit(1)
		}
		transcript = rt
	}
	defer func() {
		_ = transcript.Close() // Ignore error in defer
	}()

	sess, err := session.New(world, transcript, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(ctx, sess),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
