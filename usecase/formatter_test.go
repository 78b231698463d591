package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raidledger/progress/fixtures"
	"github.com/raidledger/progress/model"
)

func taskProgress(t *testing.T, formatted *model.FormattedProgress, id model.TaskID) model.TaskProgress {
	t.Helper()
	progress, ok := taskByID(formatted, id)
	require.True(t, ok, "task %s missing from formatted output", id)
	return progress
}

func objectiveProgress(t *testing.T, formatted *model.FormattedProgress, id model.ObjectiveID) model.ObjectiveProgress {
	t.Helper()
	for _, objective := range formatted.Objectives {
		if objective.ID == id {
			return objective
		}
	}
	t.Fatalf("objective %s missing from formatted output", id)
	return model.ObjectiveProgress{}
}

func Test_Format_AbsentRecordDefaults(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)

	formatted := formatter.Format(nil, fixtures.UserUUID1, model.ModePvP)

	require.Equal(t, model.MinPlayerLevel, formatted.PlayerLevel)
	require.Equal(t, fixtures.UserUUID1[:model.DisplayNameLength], formatted.DisplayName)
	require.Len(t, formatted.Tasks, len(fixtures.Tasks()))
	for _, task := range formatted.Tasks {
		require.False(t, task.Complete)
	}
}

func Test_Format_FactionForcesInvalid(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)
	// Raw data claims the bravo-only t4 is complete, but the player is
	// alpha: the flag must not be trusted.
	raw := &model.UserProgressRecord{
		UserUUID:    fixtures.UserUUID1,
		GameMode:    model.ModePvP,
		PlayerLevel: 10,
		Faction:     model.FactionAlpha,
		Tasks:       map[model.TaskID]bool{"t1": true, "t4": true, "t5": true},
		Objectives:  map[model.ObjectiveID]bool{"t4-o1": true, "t5-o1": true},
	}

	formatted := formatter.Format(raw, fixtures.UserUUID1, model.ModePvP)

	t4 := taskProgress(t, formatted, "t4")
	require.False(t, t4.Complete)
	require.True(t, t4.Invalid)

	// Invalidation cascades over successor edges and into objectives.
	t5 := taskProgress(t, formatted, "t5")
	require.False(t, t5.Complete)
	require.True(t, t5.Invalid)
	require.True(t, objectiveProgress(t, formatted, "t4-o1").Invalid)
	require.False(t, objectiveProgress(t, formatted, "t5-o1").Complete)

	// Eligible branches are untouched.
	require.True(t, taskProgress(t, formatted, "t1").Complete)
	require.False(t, taskProgress(t, formatted, "t1").Invalid)
}

func Test_Format_FailedTask(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)
	raw := &model.UserProgressRecord{
		UserUUID:    fixtures.UserUUID2,
		GameMode:    model.ModePvP,
		Faction:     model.FactionBravo,
		TasksFailed: map[model.TaskID]bool{"t6": true},
	}

	formatted := formatter.Format(raw, fixtures.UserUUID2, model.ModePvP)

	t6 := taskProgress(t, formatted, "t6")
	require.True(t, t6.Failed)
	require.False(t, t6.Complete)
}

func Test_Format_LevelClamped(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)

	high := formatter.Format(&model.UserProgressRecord{PlayerLevel: 500, Faction: model.FactionAlpha}, fixtures.UserUUID1, model.ModePvP)
	require.Equal(t, model.MaxPlayerLevelCap, high.PlayerLevel)

	low := formatter.Format(&model.UserProgressRecord{PlayerLevel: -3, Faction: model.FactionAlpha}, fixtures.UserUUID1, model.ModePvP)
	require.Equal(t, model.MinPlayerLevel, low.PlayerLevel)
}

func Test_Format_Hideout(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)
	raw := &model.UserProgressRecord{
		UserUUID:      fixtures.UserUUID1,
		GameMode:      model.ModePvP,
		Faction:       model.FactionAlpha,
		HideoutLevels: map[model.LevelID]bool{"generator-1": true},
		HideoutParts:  map[model.ItemID]bool{"wires": true},
		Items:         map[model.ItemID]int64{"fuel": 3},
	}

	formatted := formatter.Format(raw, fixtures.UserUUID1, model.ModePvP)

	require.Equal(t, []model.HideoutLevelProgress{
		{ID: "generator-1", Complete: true},
		{ID: "generator-2", Complete: false},
	}, formatted.HideoutLevels)

	require.Equal(t, []model.HideoutPartProgress{
		// 3 fuel on hand covers the 2 required for level 1.
		{ID: "fuel", LevelID: "generator-1", Count: 3, Required: 2, Complete: true},
		{ID: "fuel", LevelID: "generator-2", Count: 3, Required: 4, Complete: false},
		// The explicit part flag wins even with too few items counted.
		{ID: "wires", LevelID: "generator-2", Count: 0, Required: 3, Complete: true},
	}, formatted.HideoutParts)
}

func Test_Format_UnknownFactionDefaults(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)
	raw := &model.UserProgressRecord{Faction: "martian", Tasks: map[model.TaskID]bool{"t1": true}}

	formatted := formatter.Format(raw, fixtures.UserUUID1, model.ModePvP)

	// Default faction is alpha, so the bravo-only branch is invalid.
	require.True(t, taskProgress(t, formatted, "t4").Invalid)
	require.True(t, taskProgress(t, formatted, "t1").Complete)
}

// Formatting is pure: the same raw record and catalog snapshot produce
// byte-identical output.
func Test_Format_RoundTrip(t *testing.T) {
	formatter := NewFormatter(testSnapshot(), nil)
	raw := fixtures.Progresses()[0]

	first := formatter.Format(&raw, raw.UserUUID, raw.GameMode)
	second := formatter.Format(&raw, raw.UserUUID, raw.GameMode)
	require.Equal(t, first, second)

	firstBytes, err := json.Marshal(first)
	require.NoError(t, err)
	secondBytes, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, firstBytes, secondBytes)
}
