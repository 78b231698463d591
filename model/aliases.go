package model

import "time"

type (
	UserUUID    = string
	TeamUUID    = string
	TaskID      = string
	ObjectiveID = string
	StationID   = string
	LevelID     = string
	ItemID      = string
	UnixTime    = int64
)

type GameMode string

const (
	ModePvP GameMode = "pvp"
	ModePvE GameMode = "pve"
)

var AllowedGameModes = []GameMode{ModePvP, ModePvE}

func (m GameMode) Valid() bool {
	for _, allowed := range AllowedGameModes {
		if m == allowed {
			return true
		}
	}
	return false
}

type Faction string

const (
	FactionAny   Faction = "any"
	FactionAlpha Faction = "alpha"
	FactionBravo Faction = "bravo"
)

// DefaultFaction is assumed when a raw progress record carries none.
const DefaultFaction = FactionAlpha

func (f Faction) Valid() bool {
	return f == FactionAny || f == FactionAlpha || f == FactionBravo
}

// Eligible reports whether a player of faction f may take a task
// restricted to required.
func (f Faction) Eligible(required Faction) bool {
	return required == FactionAny || required == f
}

const (
	MinPlayerLevel    = 1
	MaxPlayerLevelCap = 79

	DefaultMaximumMembers = 10
	MinMaximumMembers     = 2
	MaxMaximumMembers     = 10

	// CreateCooldown is the window after leaving a team during which
	// creating a new one is refused.
	CreateCooldown = 5 * time.Minute

	// DisplayNameLength is how many leading runes of the user id are used
	// when a record carries no display name.
	DisplayNameLength = 6

	GeneratedPasswordLength = 16
)
