package model

// FormattedProgress is the validated, faction-aware view of one user's
// progress. It is recomputed on every read and never persisted.
type FormattedProgress struct {
	UserUUID    UserUUID `json:"user_uuid"`
	DisplayName string   `json:"display_name"`
	PlayerLevel int      `json:"player_level"`
	GameMode    GameMode `json:"game_mode"`

	Tasks         []TaskProgress         `json:"tasks"`
	Objectives    []ObjectiveProgress    `json:"objectives"`
	HideoutLevels []HideoutLevelProgress `json:"hideout_levels"`
	HideoutParts  []HideoutPartProgress  `json:"hideout_parts"`
}

type TaskProgress struct {
	ID       TaskID `json:"id"`
	Complete bool   `json:"complete"`
	Failed   bool   `json:"failed"`
	Invalid  bool   `json:"invalid"`
}

type ObjectiveProgress struct {
	ID       ObjectiveID `json:"id"`
	Complete bool        `json:"complete"`
	Invalid  bool        `json:"invalid"`
}

type HideoutLevelProgress struct {
	ID       LevelID `json:"id"`
	Complete bool    `json:"complete"`
}

type HideoutPartProgress struct {
	ID       ItemID  `json:"id"`
	LevelID  LevelID `json:"level_id"`
	Count    int64   `json:"count"`
	Required int64   `json:"required"`
	Complete bool    `json:"complete"`
}

// TeamProgressResponse is the aggregate view over a team's visible
// members.
type TeamProgressResponse struct {
	Members []*FormattedProgress `json:"members"`
	Meta    TeamProgressMeta     `json:"meta"`
}

type TeamProgressMeta struct {
	HiddenTeammates []UserUUID `json:"hidden_teammates"`
}

// TaskStatus filters the single-member task view.
type TaskStatus string

const (
	TaskAvailable TaskStatus = "available"
	TaskLocked    TaskStatus = "locked"
	TaskCompleted TaskStatus = "completed"
)

// NeededTask annotates a task with the visible members for whom it is
// unlocked, eligible and not yet completed.
type NeededTask struct {
	ID       TaskID     `json:"id"`
	NeededBy []UserUUID `json:"needed_by"`
}
