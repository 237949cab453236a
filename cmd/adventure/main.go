package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jwebster45206/glass-forest/internal/config"
	"github.com/jwebster45206/glass-forest/internal/logger"
	"github.com/jwebster45206/glass-forest/internal/services"
	"github.com/jwebster45206/glass-forest/internal/session"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
	"github.com/jwebster45206/glass-forest/pkg/state"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	ctx := context.Background()

	world, err := scenario.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}
	for _, issue := range world.Validate() {
		log.Warn("World validation issue", "issue", issue.Error())
	}

	transcript, err := openTranscript(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open transcript: %v\n", err)
		os.Exit(1)
	}
	// os.Exit skips deferred calls, so every exit path closes explicitly.
	closeTranscript := closeOnce(transcript, log)

	sess, err := session.New(world, transcript, log)
	if err != nil {
		closeTranscript()
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	// Stdin reads block, so an interrupt ends the game from here.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Info("Game interrupted", "signal", sig.String())
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, state.MsgFarewell)
		closeTranscript()
		os.Exit(0)
	}()

	if err := play(ctx, sess, cfg.WrapWidth, os.Stdin, os.Stdout, closeTranscript); err != nil {
		logger.WithError(log, err).Error("Game stopped")
		os.Exit(1)
	}
}

// play runs the game to the end and closes the transcript whatever the outcome.
func play(ctx context.Context, sess *session.Session, wrapWidth int, in io.Reader, out io.Writer, closeTranscript func()) error {
	defer closeTranscript()
	return sess.WithWrapWidth(wrapWidth).Run(ctx, in, out)
}

func closeOnce(t services.Transcript, log *slog.Logger) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := t.Close(); err != nil {
				logger.WithError(log, err).Warn("Failed to close transcript")
			}
		})
	}
}

func openTranscript(ctx context.Context, cfg *config.Config, log *slog.Logger) (services.Transcript, error) {
	if cfg.TranscriptRedisURL == "" {
		return services.NoopTranscript{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return services.NewRedisTranscript(ctx, cfg.TranscriptRedisURL, log)
}
