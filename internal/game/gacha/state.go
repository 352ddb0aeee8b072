package gacha

import "github.com/cory-johannsen/heroforge/internal/game/hero"

// State is a player's summon progress. It is a value: every summon returns a
// new State and leaves its input untouched.
type State struct {
	SummonCount int `json:"summon_count"`
	// LastFreeSummonDate is the UTC day of the last free summon as
	// YYYY-MM-DD, or "" if the player never used one.
	LastFreeSummonDate string `json:"last_free_summon_date"`
	// PitySummons counts consecutive rolls without an epic or legendary.
	PitySummons int `json:"pity_summons"`
}

// Result is the outcome of a paid summon.
type Result struct {
	Templates []hero.Template
	State     State
	Gold      int
}
