package model

// TaskDefinition is an immutable quest definition loaded from the
// external catalog. Predecessor edges point from prerequisite to
// dependent.
type TaskDefinition struct {
	ID              TaskID        `json:"id"`
	Name            string        `json:"name"`
	RequiredFaction Faction       `json:"required_faction"`
	MinPlayerLevel  int           `json:"min_player_level"`
	Objectives      []ObjectiveID `json:"objectives"`
	Predecessors    []TaskID      `json:"predecessors"`
}
