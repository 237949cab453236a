package scenario

import (
	"testing"

	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultActions(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	run := func(locID, phrase string, p fakePlayer) effect.Effect {
		t.Helper()
		loc, ok := r.Get(locID)
		require.True(t, ok)
		action, ok := loc.Actions[phrase]
		require.True(t, ok, "%s has no action %q", locID, phrase)
		return action.Do(p, loc)
	}

	tests := []struct {
		name       string
		location   string
		phrase     string
		player     fakePlayer
		wantMove   string
		wantQuit   bool
		wantTraits map[effect.Trait]int
		wantReveal []string
		wantNarr   string
	}{
		{name: "yes enters", location: "terminal_room", phrase: "yes", wantMove: "meadow"},
		{name: "enter enters", location: "terminal_room", phrase: "enter", wantMove: "meadow"},
		{name: "no quits", location: "terminal_room", phrase: "no", wantQuit: true},
		{
			name: "drink green", location: "meadow", phrase: "drink green",
			wantMove: "glass_forest", wantTraits: map[effect.Trait]int{effect.Aggression: 1},
			wantNarr: "You drink the green liquid.",
		},
		{
			name: "drink red", location: "meadow", phrase: "drink red",
			wantMove: "frozen_tundra", wantTraits: map[effect.Trait]int{effect.Empathy: 1},
		},
		{
			name: "attack giant", location: "meadow", phrase: "attack giant",
			wantTraits: map[effect.Trait]int{effect.Aggression: 2}, wantNarr: "Foolish child",
		},
		{
			name: "talk to giant", location: "meadow", phrase: "talk to giant",
			wantTraits: map[effect.Trait]int{effect.Empathy: 1},
		},
		{
			name: "burrow through eye", location: "meadow", phrase: "burrow through eye",
			wantMove: "castle", wantTraits: map[effect.Trait]int{effect.Creativity: 3},
		},
		{name: "go north", location: "glass_forest", phrase: "go north", wantMove: "frozen_lake"},
		{
			name: "go west without empathy", location: "glass_forest", phrase: "go west",
			wantNarr: "You wander west but find nothing of interest.",
		},
		{
			name: "go west with empathy", location: "glass_forest", phrase: "go west",
			player: fakePlayer{traits: map[effect.Trait]int{effect.Empathy: 1}}, wantMove: "child_encounter",
		},
		{
			name: "touch glass tree without creativity", location: "glass_forest", phrase: "touch glass tree",
			wantNarr: "you don't find anything useful",
		},
		{
			name: "touch glass tree with creativity", location: "glass_forest", phrase: "touch glass tree",
			player:     fakePlayer{traits: map[effect.Trait]int{effect.Creativity: 1}},
			wantReveal: []string{GlassShard}, wantNarr: "loose glass shard",
		},
		{
			name: "talk to child", location: "child_encounter", phrase: "talk to child",
			wantTraits: map[effect.Trait]int{effect.Empathy: 1},
		},
		{name: "leave child", location: "child_encounter", phrase: "leave", wantMove: "glass_forest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := run(tt.location, tt.phrase, tt.player)
			assert.Equal(t, tt.wantMove, e.MoveTo)
			assert.Equal(t, tt.wantQuit, e.Quit)
			assert.Equal(t, tt.wantReveal, e.Reveal)
			if tt.wantTraits != nil {
				assert.Equal(t, tt.wantTraits, e.Traits)
			} else {
				assert.Empty(t, e.Traits)
			}
			if tt.wantNarr != "" {
				assert.Contains(t, e.Narration, tt.wantNarr)
			}
			assert.NoError(t, e.Validate(), "handlers never lower traits")
		})
	}
}

func TestTouchGlassTree_NoDuplicateShard(t *testing.T) {
	loc := &Location{Items: []string{GlassShard}}
	p := fakePlayer{traits: map[effect.Trait]int{effect.Creativity: 1}}

	e := touchGlassTree(p, loc)
	assert.Empty(t, e.Reveal)
	assert.Equal(t, []string{GlassShard}, loc.Items, "handlers do not mutate the location")
}

func TestTouchGlassTree_ShardAlreadyCarried(t *testing.T) {
	loc := &Location{}
	p := fakePlayer{
		traits:    map[effect.Trait]int{effect.Creativity: 3},
		inventory: []string{GlassShard},
	}

	e := touchGlassTree(p, loc)
	assert.Empty(t, e.Reveal)
	assert.Contains(t, e.Narration, "you don't find anything useful")
}
