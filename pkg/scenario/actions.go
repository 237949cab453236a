package scenario

import "github.com/jwebster45206/glass-forest/pkg/effect"

// GlassShard is the item the glass forest reveals to creative players.
const GlassShard = "glass shard"

// DefaultActions returns the action tables for the built-in world, keyed by
// location ID and then by canonical phrase. Locations without an entry are dead ends.
func DefaultActions() map[string]map[string]Action {
	enter := Action{Exits: []string{"meadow"}, Do: enterSimulation}

	return map[string]map[string]Action{
		"terminal_room": {
			"yes":   enter,
			"enter": enter,
			"no":    {Do: func(PlayerView, *Location) effect.Effect { return effect.Quit() }},
		},
		"meadow": {
			"drink green":        {Exits: []string{"glass_forest"}, Do: drinkGreen},
			"drink red":          {Exits: []string{"frozen_tundra"}, Do: drinkRed},
			"attack giant":       {Do: attackGiant},
			"talk to giant":      {Do: talkToGiant},
			"burrow through eye": {Exits: []string{"castle"}, Do: burrowThroughEye},
		},
		"glass_forest": {
			// frozen_lake was never authored; Validate reports it.
			"go north":         {Exits: []string{"frozen_lake"}, Do: goNorth},
			"go west":          {Exits: []string{"child_encounter"}, Do: goWest},
			"touch glass tree": {Do: touchGlassTree},
		},
		"child_encounter": {
			"talk to child": {Do: talkToChild},
			"leave":         {Exits: []string{"glass_forest"}, Do: leaveChild},
		},
	}
}

func enterSimulation(PlayerView, *Location) effect.Effect {
	return effect.Move("meadow", "")
}

func drinkGreen(PlayerView, *Location) effect.Effect {
	return effect.Move("glass_forest",
		"You drink the green liquid. It burns your throat, and your vision blurs. You collapse.").
		WithTrait(effect.Aggression, 1)
}

func drinkRed(PlayerView, *Location) effect.Effect {
	return effect.Move("frozen_tundra",
		"You drink the red liquid. It tastes sweet, but then your body seizes up. You fall to the ground, paralyzed.").
		WithTrait(effect.Empathy, 1)
}

func attackGiant(PlayerView, *Location) effect.Effect {
	return effect.Stay("You charge at the giant, but he swats you away like a fly. 'Foolish child,' he laughs.").
		WithTrait(effect.Aggression, 2)
}

func talkToGiant(PlayerView, *Location) effect.Effect {
	return effect.Stay("You try to speak to the giant. 'Why are you doing this?' you ask. He sneers, 'Because it's fun.'").
		WithTrait(effect.Empathy, 1)
}

func burrowThroughEye(PlayerView, *Location) effect.Effect {
	return effect.Move("castle",
		"You leap onto the giant's face and burrow into his eye. He screams, and the world shifts. You find yourself in a castle.").
		WithTrait(effect.Creativity, 3)
}

func goNorth(PlayerView, *Location) effect.Effect {
	return effect.Move("frozen_lake", "")
}

func goWest(p PlayerView, _ *Location) effect.Effect {
	if p.Trait(effect.Empathy) > 0 {
		return effect.Move("child_encounter", "")
	}
	return effect.Stay("You wander west but find nothing of interest.")
}

func touchGlassTree(p PlayerView, loc *Location) effect.Effect {
	// One shard per game: not while it lies here or is already carried.
	if p.Trait(effect.Creativity) > 0 && !loc.HasItem(GlassShard) && !p.Has(GlassShard) {
		e := effect.Stay("You notice a loose glass shard on the tree.")
		e.Reveal = []string{GlassShard}
		return e
	}
	return effect.Stay("The glass tree is sharp, but you don't find anything useful.")
}

func talkToChild(PlayerView, *Location) effect.Effect {
	return effect.Stay("You kneel down and ask the child why they are crying. 'I lost my way,' the child says. 'Can you help me?'").
		WithTrait(effect.Empathy, 1)
}

func leaveChild(PlayerView, *Location) effect.Effect {
	return effect.Move("glass_forest", "")
}
