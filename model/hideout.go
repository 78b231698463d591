package model

// HideoutStationDefinition is an immutable base-building station from
// the external catalog.
type HideoutStationDefinition struct {
	ID     StationID                `json:"id"`
	Name   string                   `json:"name"`
	Levels []HideoutLevelDefinition `json:"levels"`
}

type HideoutLevelDefinition struct {
	ID           LevelID           `json:"id"`
	Level        int               `json:"level"`
	Requirements []ItemRequirement `json:"requirements"`
}

type ItemRequirement struct {
	ItemID ItemID `json:"item_id"`
	Count  int64  `json:"count"`
}
