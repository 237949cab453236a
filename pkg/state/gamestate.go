package state

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
)

// GameState is the context for a single play-through. It owns the player and
// the game's own copy of the world; nothing is reached through globals.
type GameState struct {
	ID          uuid.UUID          `json:"id"` // Unique ID per session
	Player      *Player            `json:"player"`
	World       *scenario.Registry `json:"-"`
	TurnCounter int                `json:"turn_counter"`
	IsEnded     bool               `json:"is_ended"`

	logger *slog.Logger
}

// NewGameState starts a game at the world's start location.
func NewGameState(world *scenario.Registry, logger *slog.Logger) (*GameState, error) {
	if world == nil {
		return nil, fmt.Errorf("world cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &GameState{
		ID:     id,
		Player: NewPlayer(world.Start()),
		World:  world,
		logger: logger.With("game_id", id.String()),
	}, nil
}

// CurrentLocation returns the location the player is standing in.
func (gs *GameState) CurrentLocation() (*scenario.Location, bool) {
	return gs.World.Get(gs.Player.Location)
}

// DescribeLocation renders the current location for the player.
func (gs *GameState) DescribeLocation() string {
	if loc, ok := gs.CurrentLocation(); ok {
		return loc.Describe(gs.Player)
	}
	return "You are in an unknown location."
}
