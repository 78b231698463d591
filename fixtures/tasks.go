package fixtures

import (
	"github.com/raidledger/progress/model"
)

// Tasks returns a small catalog: a linear chain t1 -> t2 -> t3 open to
// everyone, a bravo-only branch t4 -> t5, and a free-standing t6.
func Tasks() []*model.TaskDefinition {
	return []*model.TaskDefinition{
		{
			ID:              "t1",
			Name:            "First Steps",
			RequiredFaction: model.FactionAny,
			Objectives:      []model.ObjectiveID{"t1-o1", "t1-o2"},
		},
		{
			ID:              "t2",
			Name:            "Supply Lines",
			RequiredFaction: model.FactionAny,
			Objectives:      []model.ObjectiveID{"t2-o1"},
			Predecessors:    []model.TaskID{"t1"},
		},
		{
			ID:              "t3",
			Name:            "Deep Stash",
			RequiredFaction: model.FactionAny,
			Objectives:      []model.ObjectiveID{"t3-o1"},
			Predecessors:    []model.TaskID{"t2"},
		},
		{
			ID:              "t4",
			Name:            "Closed Channel",
			RequiredFaction: model.FactionBravo,
			Objectives:      []model.ObjectiveID{"t4-o1"},
			Predecessors:    []model.TaskID{"t1"},
		},
		{
			ID:              "t5",
			Name:            "Closed Channel Part 2",
			RequiredFaction: model.FactionAny,
			Objectives:      []model.ObjectiveID{"t5-o1"},
			Predecessors:    []model.TaskID{"t4"},
		},
		{
			ID:              "t6",
			Name:            "Side Job",
			RequiredFaction: model.FactionAny,
			Objectives:      []model.ObjectiveID{"t6-o1"},
		},
	}
}

func Stations() []*model.HideoutStationDefinition {
	return []*model.HideoutStationDefinition{
		{
			ID:   "generator",
			Name: "Generator",
			Levels: []model.HideoutLevelDefinition{
				{
					ID:    "generator-1",
					Level: 1,
					Requirements: []model.ItemRequirement{
						{ItemID: "fuel", Count: 2},
					},
				},
				{
					ID:    "generator-2",
					Level: 2,
					Requirements: []model.ItemRequirement{
						{ItemID: "fuel", Count: 4},
						{ItemID: "wires", Count: 3},
					},
				},
			},
		},
	}
}
