package catalog

import (
	log "github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/raidledger/progress/model"
)

// Load parses an external catalog snapshot. Entries missing an id are
// skipped with a warning: a partially malformed catalog degrades, it
// never fails the load.
func Load(data []byte, logger log.Logger) *Snapshot {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return Build(parseTasks(data, logger), parseStations(data, logger), logger)
}

func parseTasks(data []byte, logger log.Logger) []*model.TaskDefinition {
	var tasks []*model.TaskDefinition

	gjson.GetBytes(data, "tasks").ForEach(func(_, raw gjson.Result) bool {
		id := raw.Get("id").String()
		if id == "" {
			logger.Warn("skipping task definition without id")
			return true
		}

		task := &model.TaskDefinition{
			ID:              id,
			Name:            raw.Get("name").String(),
			RequiredFaction: model.FactionAny,
			MinPlayerLevel:  int(raw.Get("min_player_level").Int()),
		}
		if faction := model.Faction(raw.Get("required_faction").String()); faction.Valid() {
			task.RequiredFaction = faction
		}
		raw.Get("objectives.#.id").ForEach(func(_, objective gjson.Result) bool {
			if objective.String() != "" {
				task.Objectives = append(task.Objectives, objective.String())
			}
			return true
		})
		raw.Get("predecessors").ForEach(func(_, prereq gjson.Result) bool {
			if prereq.String() != "" {
				task.Predecessors = append(task.Predecessors, prereq.String())
			}
			return true
		})

		tasks = append(tasks, task)
		return true
	})
	return tasks
}

func parseStations(data []byte, logger log.Logger) []*model.HideoutStationDefinition {
	var stations []*model.HideoutStationDefinition

	gjson.GetBytes(data, "hideout_stations").ForEach(func(_, raw gjson.Result) bool {
		id := raw.Get("id").String()
		if id == "" {
			logger.Warn("skipping hideout station without id")
			return true
		}

		station := &model.HideoutStationDefinition{
			ID:   id,
			Name: raw.Get("name").String(),
		}
		raw.Get("levels").ForEach(func(_, level gjson.Result) bool {
			levelID := level.Get("id").String()
			if levelID == "" {
				logger.Warn("skipping hideout level without id", "station", id)
				return true
			}
			def := model.HideoutLevelDefinition{
				ID:    levelID,
				Level: int(level.Get("level").Int()),
			}
			level.Get("requirements").ForEach(func(_, req gjson.Result) bool {
				itemID := req.Get("item_id").String()
				if itemID == "" {
					return true
				}
				def.Requirements = append(def.Requirements, model.ItemRequirement{
					ItemID: itemID,
					Count:  req.Get("count").Int(),
				})
				return true
			})
			station.Levels = append(station.Levels, def)
			return true
		})

		stations = append(stations, station)
		return true
	})
	return stations
}
