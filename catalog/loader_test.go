package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raidledger/progress/model"
)

const catalogJSON = `{
  "tasks": [
    {
      "id": "t1",
      "name": "Debut",
      "required_faction": "any",
      "objectives": [{"id": "t1-o1"}, {"id": "t1-o2"}],
      "predecessors": []
    },
    {
      "id": "t2",
      "name": "Shortage",
      "required_faction": "bravo",
      "min_player_level": 5,
      "objectives": [{"id": "t2-o1"}],
      "predecessors": ["t1"]
    },
    {"name": "no id, must be skipped"},
    {
      "id": "t3",
      "required_faction": "martian",
      "predecessors": ["t2", "ghost"]
    }
  ],
  "hideout_stations": [
    {
      "id": "generator",
      "name": "Generator",
      "levels": [
        {
          "id": "generator-1",
          "level": 1,
          "requirements": [{"item_id": "fuel", "count": 2}]
        }
      ]
    },
    {"levels": [{"id": "orphan-1"}]}
  ]
}`

func Test_Load(t *testing.T) {
	snapshot := Load([]byte(catalogJSON), nil)

	require.Equal(t, []model.TaskID{"t1", "t2", "t3"}, snapshot.TaskIDs())

	t2, ok := snapshot.Task("t2")
	require.True(t, ok)
	require.Equal(t, model.FactionBravo, t2.RequiredFaction)
	require.Equal(t, 5, t2.MinPlayerLevel)
	require.Equal(t, []model.ObjectiveID{"t2-o1"}, t2.Objectives)
	require.Equal(t, []model.TaskID{"t1"}, t2.Predecessors)

	// Unknown faction degrades to "any".
	t3, ok := snapshot.Task("t3")
	require.True(t, ok)
	require.Equal(t, model.FactionAny, t3.RequiredFaction)

	stations := snapshot.Stations()
	require.Len(t, stations, 1)
	require.Equal(t, "generator", string(stations[0].ID))
	require.Len(t, stations[0].Levels, 1)
	require.Equal(t, int64(2), stations[0].Levels[0].Requirements[0].Count)
}

func Test_Load_GraphEdges(t *testing.T) {
	snapshot := Load([]byte(catalogJSON), nil)

	succ := snapshot.Graph().Successors("t1")
	require.Equal(t, map[model.TaskID]struct{}{"t2": {}, "t3": {}}, succ)

	// Edge to the unknown "ghost" task was dropped at build time.
	require.Equal(t, map[model.TaskID]struct{}{"t1": {}, "t2": {}}, snapshot.Graph().Predecessors("t3"))
}

func Test_Holder_Replace(t *testing.T) {
	first := Load([]byte(catalogJSON), nil)
	holder := NewHolder(first)
	require.Same(t, first, holder.Current())

	second := Load([]byte(`{"tasks": [{"id": "only"}]}`), nil)
	holder.Replace(second)
	require.Same(t, second, holder.Current())
	require.Equal(t, []model.TaskID{"only"}, holder.Current().TaskIDs())
}
