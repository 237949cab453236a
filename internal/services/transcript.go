package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/glass-forest/pkg/effect"
)

// TranscriptEntry records one turn of play.
type TranscriptEntry struct {
	GameID   uuid.UUID            `json:"game_id"`
	Turn     int                  `json:"turn"`
	Input    string               `json:"input"`
	Message  string               `json:"message,omitempty"`
	Location string               `json:"location"`
	Traits   map[effect.Trait]int `json:"traits,omitempty"`
	Quit     bool                 `json:"quit,omitempty"`
	At       time.Time            `json:"at"`
}

// Transcript defines the interface for recording play-throughs.
// A transcript is write-mostly; games are never restored from it.
type Transcript interface {
	// Record appends a turn to the game's transcript
	Record(ctx context.Context, entry TranscriptEntry) error

	// Entries returns the recorded turns for a game, oldest first.
	// The game never reads its own transcript; this is for inspection and tests.
	Entries(ctx context.Context, gameID uuid.UUID) ([]TranscriptEntry, error)

	// Close releases any connection held by the transcript
	Close() error
}

// NoopTranscript discards everything. It is used when no transcript store is configured.
type NoopTranscript struct{}

var _ Transcript = NoopTranscript{}

func (NoopTranscript) Record(context.Context, TranscriptEntry) error { return nil }

func (NoopTranscript) Entries(context.Context, uuid.UUID) ([]TranscriptEntry, error) {
	return nil, nil
}

func (NoopTranscript) Close() error { return nil }
