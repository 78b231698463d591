package usecase

import (
	"sort"

	log "github.com/hashicorp/go-hclog"

	"github.com/raidledger/progress/catalog"
	"github.com/raidledger/progress/model"
)

// Formatter reconciles one raw progress record against the catalog and
// produces the trustworthy view. It is pure over its inputs: the same
// raw record and snapshot always produce the same output.
type Formatter struct {
	snapshot *catalog.Snapshot
	logger   log.Logger
}

func NewFormatter(snapshot *catalog.Snapshot, logger log.Logger) *Formatter {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Formatter{snapshot: snapshot, logger: logger}
}

// Format never fails: an absent or malformed record degrades to the
// minimal default view.
func (f *Formatter) Format(raw *model.UserProgressRecord, userID model.UserUUID, mode model.GameMode) *model.FormattedProgress {
	if raw == nil {
		raw = &model.UserProgressRecord{
			UserUUID:    userID,
			GameMode:    mode,
			PlayerLevel: model.MinPlayerLevel,
		}
	}

	faction := raw.Faction
	if !faction.Valid() {
		faction = model.DefaultFaction
	}

	invalid := f.invalidTasks(faction)

	out := &model.FormattedProgress{
		UserUUID:    userID,
		DisplayName: displayName(raw.DisplayName, userID),
		PlayerLevel: clampLevel(raw.PlayerLevel),
		GameMode:    mode,
	}

	for _, id := range f.snapshot.TaskIDs() {
		task, _ := f.snapshot.Task(id)
		_, isInvalid := invalid[id]

		out.Tasks = append(out.Tasks, model.TaskProgress{
			ID:       id,
			Complete: !isInvalid && raw.Tasks[id],
			Failed:   !isInvalid && raw.TasksFailed[id],
			Invalid:  isInvalid,
		})
		for _, objectiveID := range task.Objectives {
			out.Objectives = append(out.Objectives, model.ObjectiveProgress{
				ID:       objectiveID,
				Complete: !isInvalid && raw.Objectives[objectiveID],
				Invalid:  isInvalid,
			})
		}
	}
	sort.Slice(out.Objectives, func(i, j int) bool { return out.Objectives[i].ID < out.Objectives[j].ID })

	f.formatHideout(raw, out)
	return out
}

// invalidTasks is the set of faction-ineligible tasks plus everything
/// reachable from them: invalidation is transitive over successor edges.
func (f *Formatter) invalidTasks(faction model.Faction) map[model.TaskID]struct{} {
	invalid := map[model.TaskID]struct{}{}
	for _, id := range f.snapshot.TaskIDs() {
		task, _ := f.snapshot.Task(id)
		if faction.Eligible(task.RequiredFaction) {
			continue
		}
		invalid[id] = struct{}{}
		for successor := range f.snapshot.Graph().Successors(id) {
			invalid[successor] = struct{}{}
		}
	}
	return invalid
}

func (f *Formatter) formatHideout(raw *model.UserProgressRecord, out *model.FormattedProgress) {
	for _, station := range f.snapshot.Stations() {
		for _, level := range station.Levels {
			out.HideoutLevels = append(out.HideoutLevels, model.HideoutLevelProgress{
				ID:       level.ID,
				Complete: raw.HideoutLevels[level.ID],
			})
			for _, req := range level.Requirements {
				count := raw.Items[req.ItemID]
				out.HideoutParts = append(out.HideoutParts, model.HideoutPartProgress{
					ID:       req.ItemID,
					LevelID:  level.ID,
					Count:    count,
					Required: req.Count,
					Complete: raw.HideoutParts[req.ItemID] || count >= req.Count,
				})
			}
		}
	}
	sort.Slice(out.HideoutLevels, func(i, j int) bool { return out.HideoutLevels[i].ID < out.HideoutLevels[j].ID })
	sort.Slice(out.HideoutParts, func(i, j int) bool {
		a, b := out.HideoutParts[i], out.HideoutParts[j]
		if a.LevelID != b.LevelID {
			return a.LevelID < b.LevelID
		}
		return a.ID < b.ID
	})
}

func clampLevel(level int) int {
	if level < model.MinPlayerLevel {
		return model.MinPlayerLevel
	}
	if level > model.MaxPlayerLevelCap {
		return model.MaxPlayerLevelCap
	}
	return level
}

func displayName(name string, userID model.UserUUID) string {
	if name != "" {
		return name
	}
	runes := []rune(userID)
	if len(runes) > model.DisplayNameLength {
		runes = runes[:model.DisplayNameLength]
	}
	return string(runes)
}
