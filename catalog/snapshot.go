// Package catalog holds the immutable task/hideout definitions of one
// external catalog load, plus the prerequisite graph built from them.
package catalog

import (
	"sort"
	"sync"

	log "github.com/hashicorp/go-hclog"

	"github.com/raidledger/progress/graph"
	"github.com/raidledger/progress/model"
)

// Snapshot is read-only after Build. A new catalog load produces a new
// Snapshot; the old one, and the graph memoization tied to it, is
// discarded wholesale.
type Snapshot struct {
	tasks     map[model.TaskID]*model.TaskDefinition
	taskOrder []model.TaskID
	stations  []*model.HideoutStationDefinition

	graph *graph.Graph
}

func Build(tasks []*model.TaskDefinition, stations []*model.HideoutStationDefinition, logger log.Logger) *Snapshot {
	byID := make(map[model.TaskID]*model.TaskDefinition, len(tasks))
	order := make([]model.TaskID, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := byID[task.ID]; ok {
			if logger != nil {
				logger.Warn("dropping duplicate task definition", "task", task.ID)
			}
			continue
		}
		byID[task.ID] = task
		order = append(order, task.ID)
	}
	sort.Strings(order)

	deduped := make([]*model.TaskDefinition, 0, len(byID))
	for _, id := range order {
		deduped = append(deduped, byID[id])
	}

	return &Snapshot{
		tasks:     byID,
		taskOrder: order,
		stations:  stations,
		graph:     graph.New(deduped, logger),
	}
}

func (s *Snapshot) Task(id model.TaskID) (*model.TaskDefinition, bool) {
	task, ok := s.tasks[id]
	return task, ok
}

// TaskIDs returns task ids in stable (sorted) order.
func (s *Snapshot) TaskIDs() []model.TaskID {
	return s.taskOrder
}

func (s *Snapshot) Stations() []*model.HideoutStationDefinition {
	return s.stations
}

func (s *Snapshot) Graph() *graph.Graph {
	return s.graph
}

// Holder publishes the current Snapshot to concurrent readers. Replace
// swaps the whole snapshot; there is no incremental invalidation.
type Holder struct {
	mu      sync.RWMutex
	current *Snapshot
}

func NewHolder(initial *Snapshot) *Holder {
	return &Holder{current: initial}
}

func (h *Holder) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Holder) Replace(snapshot *Snapshot) {
	h.mu.Lock()
	h.current = snapshot
	h.mu.Unlock()
}
