package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
)

// Player-facing messages for commands the engine resolves itself.
const (
	MsgUnknownCommand = "I don't understand that command."
	MsgNoSuchItem     = "There's no such item here."
	MsgTakeWhat       = "Take what?"
	MsgBlockedExit    = "You can't go that way."
	MsgFarewell       = "You exit the simulation."
)

type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdTake      CommandType = "take"
	CmdInventory CommandType = "inventory"
	CmdHelp      CommandType = "help"
	CmdQuit      CommandType = "quit"
	CmdNone      CommandType = "" // Not a built-in, try the location's actions
)

var builtins = map[string]CommandType{
	"look":      CmdLook,
	"l":         CmdLook,
	"take":      CmdTake,
	"inventory": CmdInventory,
	"i":         CmdInventory,
	"help":      CmdHelp,
	"quit":      CmdQuit,
}

// parseCommand lowercases and tokenizes the input. The first word picks the
// built-in; the remaining words, single-spaced, are its argument.
func parseCommand(input string) (CommandType, string) {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return CmdNone, ""
	}
	return builtins[words[0]], strings.Join(words[1:], " ")
}

// CommandResult is the outcome of one line of player input.
type CommandResult struct {
	Handled  bool   // True if a built-in or a location action matched
	Message  string // Text to show the player, may be empty
	Location string // Where the player is after the command
	Quit     bool   // True if the game is over
}

// HandleCommand dispatches one line of input. Built-in verbs always win over
// location actions with the same phrase. Problems are reported as messages,
// never as errors.
func (gs *GameState) HandleCommand(input string) *CommandResult {
	phrase := scenario.CanonicalPhrase(input)
	if phrase == "" {
		return gs.result(false, "")
	}

	loc, ok := gs.CurrentLocation()
	if !ok {
		gs.logger.Error("Player is outside the registry", "location", gs.Player.Location)
		return gs.result(false, "You are in an unknown location.")
	}
	gs.TurnCounter++

	cmd, arg := parseCommand(phrase)
	switch cmd {
	case CmdLook:
		if arg != "" {
			return gs.result(true, loc.Inspect(arg))
		}
		return gs.result(true, loc.Describe(gs.Player))

	case CmdTake:
		return gs.take(loc, arg)

	case CmdInventory:
		return gs.result(true, gs.DescribeInventory())

	case CmdHelp:
		return gs.result(true, describeHelp(loc))

	case CmdQuit:
		gs.IsEnded = true
		return &CommandResult{Handled: true, Location: gs.Player.Location, Quit: true}
	}

	if action, ok := loc.Actions[phrase]; ok {
		return gs.runAction(loc, phrase, action)
	}
	return gs.result(false, MsgUnknownCommand)
}

func (gs *GameState) take(loc *scenario.Location, item string) *CommandResult {
	if item == "" {
		return gs.result(true, MsgTakeWhat)
	}
	if !loc.HasItem(item) {
		return gs.result(true, MsgNoSuchItem)
	}
	e := effect.Effect{
		Acquire:   []string{item},
		Narration: fmt.Sprintf("You take the %s.", item),
	}
	if err := NewEffectWorker(gs, &e, loc, gs.logger).Apply(); err != nil {
		gs.logger.Error("Failed to take item", "error", err, "item", item)
		return gs.result(true, MsgNoSuchItem)
	}
	return gs.result(true, e.Narration)
}

func (gs *GameState) runAction(loc *scenario.Location, phrase string, action scenario.Action) *CommandResult {
	e := action.Do(gs.Player, loc)
	err := NewEffectWorker(gs, &e, loc, gs.logger).Apply()
	switch {
	case errors.Is(err, ErrUnknownLocation):
		gs.logger.Warn("Action leads outside the registry",
			"location", loc.ID,
			"action", phrase,
			"target", e.MoveTo)
		// Only the move is dropped; the rest of the effect still happens.
		e.MoveTo = ""
		if err := NewEffectWorker(gs, &e, loc, gs.logger).Apply(); err != nil {
			gs.logger.Error("Failed to apply action effect",
				"error", err,
				"location", loc.ID,
				"action", phrase)
		}
		res := gs.result(true, joinMessages(e.Narration, MsgBlockedExit))
		res.Quit = e.Quit
		return res
	case err != nil:
		gs.logger.Error("Failed to apply action effect",
			"error", err,
			"location", loc.ID,
			"action", phrase)
		return gs.result(true, e.Narration)
	}

	res := gs.result(true, e.Narration)
	res.Quit = e.Quit
	return res
}

func (gs *GameState) result(handled bool, msg string) *CommandResult {
	return &CommandResult{
		Handled:  handled,
		Message:  msg,
		Location: gs.Player.Location,
	}
}

// DescribeInventory lists held items in the order they were picked up.
func (gs *GameState) DescribeInventory() string {
	if len(gs.Player.Inventory) == 0 {
		return "Inventory: (empty)"
	}
	return "Inventory: " + strings.Join(gs.Player.Inventory, ", ")
}

func describeHelp(loc *scenario.Location) string {
	var b strings.Builder
	b.WriteString("Commands: look [object], take <item>, inventory, help, quit.")
	if phrases := loc.ActionPhrases(); len(phrases) > 0 {
		b.WriteString("\nHere you can: ")
		b.WriteString(strings.Join(phrases, ", "))
		b.WriteString(".")
	}
	return b.String()
}

func joinMessages(msgs ...string) string {
	var parts []string
	for _, m := range msgs {
		if m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, "\n")
}
