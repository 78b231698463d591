package fixtures

import (
	"github.com/raidledger/progress/model"
)

func Progresses() []model.UserProgressRecord {
	return []model.UserProgressRecord{
		{
			UserUUID:    UserUUID1,
			GameMode:    model.ModePvP,
			DisplayName: "ragman",
			PlayerLevel: 12,
			Faction:     model.FactionAlpha,
			Tasks:       map[model.TaskID]bool{"t1": true, "t2": true},
			Objectives:  map[model.ObjectiveID]bool{"t1-o1": true, "t1-o2": true, "t2-o1": true},
			HideoutLevels: map[model.LevelID]bool{
				"generator-1": true,
			},
			Items: map[model.ItemID]int64{"fuel": 3, "wires": 1},
		},
		{
			UserUUID:    UserUUID2,
			GameMode:    model.ModePvP,
			DisplayName: "sparrow",
			PlayerLevel: 4,
			Faction:     model.FactionBravo,
			Tasks:       map[model.TaskID]bool{"t1": true, "t4": true},
			Objectives:  map[model.ObjectiveID]bool{"t1-o1": true, "t4-o1": true},
		},
		{
			UserUUID:    UserUUID1,
			GameMode:    model.ModePvE,
			DisplayName: "ragman",
			PlayerLevel: 2,
			Faction:     model.FactionAlpha,
			Tasks:       map[model.TaskID]bool{"t1": true},
		},
	}
}
