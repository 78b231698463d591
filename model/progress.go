package model

const UserProgressType = "user_progress" // also, memdb schema name

// UserProgressRecord is the raw per-(user, game mode) progress document.
// It is owned by the user and trusted only after the Formatter has
// reconciled it against the catalog.
type UserProgressRecord struct {
	UserUUID UserUUID `json:"user_uuid"` // PK part
	GameMode GameMode `json:"game_mode"` // PK part
	Version  string   `json:"resource_version"`

	DisplayName string  `json:"display_name"`
	PlayerLevel int     `json:"player_level"`
	Faction     Faction `json:"faction"`
	GameEdition int     `json:"game_edition"`

	Tasks         map[TaskID]bool      `json:"tasks"`
	TasksFailed   map[TaskID]bool      `json:"tasks_failed"`
	Objectives    map[ObjectiveID]bool `json:"objectives"`
	HideoutLevels map[LevelID]bool     `json:"hideout_levels"`
	HideoutParts  map[ItemID]bool      `json:"hideout_parts"`
	Items         map[ItemID]int64     `json:"items"`
}

func (p *UserProgressRecord) ObjType() string {
	return UserProgressType
}

func (p *UserProgressRecord) ObjId() string {
	return p.UserUUID + "/" + string(p.GameMode)
}
