package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/jwebster45206/glass-forest/internal/logger"
	"github.com/jwebster45206/glass-forest/internal/services"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
	"github.com/jwebster45206/glass-forest/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// Prompt is printed before every line of input.
	Prompt = "> "
	// MaxInputLength is the longest line Run dispatches; longer lines are rejected.
	MaxInputLength = 4096
)

// Session runs one play-through: it renders the current location, reads a
// line, dispatches it and records the turn. Both front ends drive a Session.
type Session struct {
	gs         *state.GameState
	transcript services.Transcript
	logger     *slog.Logger
	wrapWidth  int
	now        func() time.Time
}

// New starts a game on the given world. A nil transcript disables recording.
func New(world *scenario.Registry, transcript services.Transcript, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	gs, err := state.NewGameState(world, log)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	if transcript == nil {
		transcript = services.NoopTranscript{}
	}
	return &Session{
		gs:         gs,
		transcript: transcript,
		logger:     logger.WithGameID(log, gs.ID.String()),
		now:        time.Now,
	}, nil
}

// WithWrapWidth wraps everything Run prints at the given width; 0 disables wrapping.
// Returns the Session for method chaining
func (s *Session) WithWrapWidth(width int) *Session {
	s.wrapWidth = width
	return s
}

// GameState exposes the game for rendering status panels.
func (s *Session) GameState() *state.GameState {
	return s.gs
}

// Describe renders the player's current location.
func (s *Session) Describe() string {
	return s.gs.DescribeLocation()
}

// Step dispatches one line of input and records the turn.
func (s *Session) Step(ctx context.Context, input string) *state.CommandResult {
	res := s.gs.HandleCommand(input)

	entry := services.TranscriptEntry{
		GameID:   s.gs.ID,
		Turn:     s.gs.TurnCounter,
		Input:    input,
		Message:  res.Message,
		Location: res.Location,
		Traits:   maps.Clone(s.gs.Player.Traits),
		Quit:     res.Quit,
		At:       s.now(),
	}
	if err := s.transcript.Record(ctx, entry); err != nil {
		// The transcript is best effort; the game goes on without it.
		logger.WithError(s.logger, err).Warn("Failed to record transcript entry", "turn", entry.Turn)
	}

	return res
}

// Run plays until the player quits, input ends, or ctx is cancelled.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	s.logger.Info("Game started", "location", s.gs.Player.Location)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(w, s.wrap(s.Describe()))
		fmt.Fprint(w, Prompt)

		line, tooLong, err := readLine(reader, MaxInputLength)
		if errors.Is(err, io.EOF) {
			// End of input behaves like quit.
			fmt.Fprintln(w)
			fmt.Fprintln(w, state.MsgFarewell)
			s.logger.Info("Game ended", "reason", "eof", "turns", s.gs.TurnCounter)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if tooLong {
			s.logger.Warn("Discarded oversized input line", "limit", MaxInputLength)
			fmt.Fprintln(w, state.MsgUnknownCommand)
			continue
		}

		res := s.Step(ctx, line)
		if res.Message != "" {
			fmt.Fprintln(w, s.wrap(res.Message))
		}
		if res.Quit {
			fmt.Fprintln(w, state.MsgFarewell)
			s.logger.Info("Game ended", "reason", "quit", "turns", s.gs.TurnCounter)
			return nil
		}
	}
}

// readLine reads one line without its line ending. A line longer than limit
// is consumed in full and reported as tooLong. The last line of input may
// lack a newline; io.EOF is returned only once nothing is left.
func readLine(r *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var buf []byte
	read := false
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", false, err
		}
		read = true
		if len(buf)+len(frag) > limit {
			tooLong = true
		} else if !tooLong {
			buf = append(buf, frag...)
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", true, nil
	}
	return string(buf), false, nil
}

func (s *Session) wrap(text string) string {
	if s.wrapWidth <= 0 {
		return text
	}
	return wordwrap.String(text, s.wrapWidth)
}
