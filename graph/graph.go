// Package graph answers reachability queries over the immutable task
// prerequisite graph of one catalog snapshot.
package graph

import (
	"sync"

	log "github.com/hashicorp/go-hclog"

	"github.com/raidledger/progress/model"
)

// Graph is an adjacency structure over task ids. Edges point from
// prerequisite to dependent. A Graph is built once per catalog snapshot
// and queried concurrently; replacing the snapshot replaces the Graph
// and with it every memoized closure.
type Graph struct {
	dependents    map[model.TaskID][]model.TaskID // prerequisite -> dependents
	prerequisites map[model.TaskID][]model.TaskID // dependent -> prerequisites

	mu       sync.RWMutex
	predMemo map[model.TaskID]map[model.TaskID]struct{}
	succMemo map[model.TaskID]map[model.TaskID]struct{}

	logger log.Logger
}

func New(tasks []*model.TaskDefinition, logger log.Logger) *Graph {
	if logger == nil {
		logger = log.NewNullLogger()
	}

	known := make(map[model.TaskID]struct{}, len(tasks))
	for _, task := range tasks {
		known[task.ID] = struct{}{}
	}

	g := &Graph{
		dependents:    map[model.TaskID][]model.TaskID{},
		prerequisites: map[model.TaskID][]model.TaskID{},
		predMemo:      map[model.TaskID]map[model.TaskID]struct{}{},
		succMemo:      map[model.TaskID]map[model.TaskID]struct{}{},
		logger:        logger,
	}

	for _, task := range tasks {
		for _, prereq := range task.Predecessors {
			if _, ok := known[prereq]; !ok {
				// Malformed catalog data must not take the service down.
				logger.Warn("dropping edge to unknown task", "task", task.ID, "prerequisite", prereq)
				continue
			}
			g.prerequisites[task.ID] = append(g.prerequisites[task.ID], prereq)
			g.dependents[prereq] = append(g.dependents[prereq], task.ID)
		}
	}
	return g
}

// Predecessors returns the transitive closure of all prerequisites of
// id. Unknown ids yield an empty set. The result is shared with the
// memo cache and must not be modified.
func (g *Graph) Predecessors(id model.TaskID) map[model.TaskID]struct{} {
	return g.closure(id, g.prerequisites, g.predMemo)
}

// Successors returns the transitive closure of all dependents of id,
// symmetric to Predecessors over the reverse edge direction.
func (g *Graph) Successors(id model.TaskID) map[model.TaskID]struct{} {
	return g.closure(id, g.dependents, g.succMemo)
}

func (g *Graph) closure(id model.TaskID, edges map[model.TaskID][]model.TaskID, memo map[model.TaskID]map[model.TaskID]struct{}) map[model.TaskID]struct{} {
	g.mu.RLock()
	cached, ok := memo[id]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	// The visited set doubles as the result and guards against cycles in
	// malformed catalogs: a node is never re-entered.
	visited := map[model.TaskID]struct{}{}
	stack := append([]model.TaskID{}, edges[id]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[next]; seen {
			continue
		}
		visited[next] = struct{}{}
		stack = append(stack, edges[next]...)
	}

	g.mu.Lock()
	memo[id] = visited
	g.mu.Unlock()
	return visited
}
