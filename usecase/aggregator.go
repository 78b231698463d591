package usecase

import (
	"sort"
	"sync"

	log "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/raidledger/progress/catalog"
	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
	"github.com/raidledger/progress/repo"
)

// TeamProgressService composes per-member formatted progress across the
// visible part of the requester's team. Each member's view is
// independent, so members are formatted concurrently, each goroutine on
// its own read snapshot.
type TeamProgressService struct {
	store  *io.MemoryStore
	holder *catalog.Holder
	policy ViewPolicy
	logger log.Logger
}

func TeamProgresses(store *io.MemoryStore, holder *catalog.Holder, logger log.Logger) *TeamProgressService {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &TeamProgressService{
		store:  store,
		holder: holder,
		policy: HiddenTeammatesPolicy,
		logger: logger,
	}
}

// WithPolicy overrides the visibility policy. Used by hosts whose
// product rules differ from the default one-directional hide-list.
func (s *TeamProgressService) WithPolicy(policy ViewPolicy) *TeamProgressService {
	s.policy = policy
	return s
}

func (s *TeamProgressService) TeamProgress(requester model.UserUUID, mode model.GameMode) (*model.TeamProgressResponse, error) {
	visible, hidden, err := s.visibleMembers(requester, mode)
	if err != nil {
		return nil, err
	}

	members, err := s.formatMembers(visible, mode)
	if err != nil {
		return nil, err
	}

	return &model.TeamProgressResponse{
		Members: members,
		Meta:    model.TeamProgressMeta{HiddenTeammates: hidden},
	}, nil
}

// NeededTasks lists every task still needed by at least one visible
// member: unlocked, faction-eligible and not yet completed for them.
func (s *TeamProgressService) NeededTasks(requester model.UserUUID, mode model.GameMode) ([]model.NeededTask, error) {
	visible, _, err := s.visibleMembers(requester, mode)
	if err != nil {
		return nil, err
	}
	members, err := s.formatMembers(visible, mode)
	if err != nil {
		return nil, err
	}

	snapshot := s.holder.Current()
	needed := []model.NeededTask{}
	for _, taskID := range snapshot.TaskIDs() {
		task, _ := snapshot.Task(taskID)
		var neededBy []model.UserUUID
		for _, member := range members {
			if memberNeedsTask(snapshot, member, task) {
				neededBy = append(neededBy, member.UserUUID)
			}
		}
		if len(neededBy) > 0 {
			needed = append(needed, model.NeededTask{ID: taskID, NeededBy: neededBy})
		}
	}
	return needed, nil
}

// MemberTasks is the single-member view filtered by status. The
// requester must be allowed to see the target.
func (s *TeamProgressService) MemberTasks(requester, target model.UserUUID, mode model.GameMode, status model.TaskStatus) ([]model.TaskProgress, error) {
	visible, _, err := s.visibleMembers(requester, mode)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, member := range visible {
		if member == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, model.ErrPermissionDenied
	}

	members, err := s.formatMembers([]model.UserUUID{target}, mode)
	if err != nil {
		return nil, err
	}
	formatted := members[0]

	snapshot := s.holder.Current()
	filtered := []model.TaskProgress{}
	for _, taskProgress := range formatted.Tasks {
		task, ok := snapshot.Task(taskProgress.ID)
		if !ok {
			continue
		}
		if classifyTask(snapshot, formatted, taskProgress, task) == status {
			filtered = append(filtered, taskProgress)
		}
	}
	return filtered, nil
}

// visibleMembers resolves the requester's team scope and splits it by
// the visibility policy. A teamless requester sees only themselves.
func (s *TeamProgressService) visibleMembers(requester model.UserUUID, mode model.GameMode) (visible, hidden []model.UserUUID, err error) {
	if !mode.Valid() {
		return nil, nil, model.ErrBadGameMode
	}

	txn := s.store.Txn(false)
	defer txn.Abort()

	memberships := repo.NewMembershipRepository(txn)
	membership, err := memberships.GetOrDefault(requester)
	if err != nil {
		return nil, nil, err
	}

	scope := []model.UserUUID{requester}
	if membership.InTeam() {
		team, err := repo.NewTeamRepository(txn).GetByID(membership.TeamUUID)
		if err != nil {
			return nil, nil, err
		}
		scope = append([]model.UserUUID{}, team.Members...)
	}

	hidden = []model.UserUUID{}
	for _, member := range scope {
		if s.policy(membership, member) {
			visible = append(visible, member)
		} else {
			hidden = append(hidden, member)
		}
	}
	sort.Strings(visible)
	sort.Strings(hidden)
	return visible, hidden, nil
}

// formatMembers fans the formatter out across members. Every goroutine
// opens its own read transaction; results land at fixed indexes so the
// response order is deterministic.
func (s *TeamProgressService) formatMembers(members []model.UserUUID, mode model.GameMode) ([]*model.FormattedProgress, error) {
	snapshot := s.holder.Current()
	formatter := NewFormatter(snapshot, s.logger)

	results := make([]*model.FormattedProgress, len(members))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)
	for i, member := range members {
		wg.Add(1)
		go func(i int, member model.UserUUID) {
			defer wg.Done()

			txn := s.store.Txn(false)
			defer txn.Abort()

			raw, err := repo.NewUserProgressRepository(txn).GetByUserMode(member, mode)
			if err != nil && err != model.ErrNotFound {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				return
			}
			results[i] = formatter.Format(raw, member, mode)
		}(i, member)
	}
	wg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return results, nil
}

func memberNeedsTask(snapshot *catalog.Snapshot, member *model.FormattedProgress, task *model.TaskDefinition) bool {
	progress, ok := taskByID(member, task.ID)
	if !ok || progress.Complete || progress.Invalid {
		return false
	}
	return taskUnlocked(snapshot, member, task)
}

// taskUnlocked requires the whole transitive prerequisite closure to be
// complete, plus the level gate.
func taskUnlocked(snapshot *catalog.Snapshot, member *model.FormattedProgress, task *model.TaskDefinition) bool {
	if member.PlayerLevel < task.MinPlayerLevel {
		return false
	}
	for prereq := range snapshot.Graph().Predecessors(task.ID) {
		progress, ok := taskByID(member, prereq)
		if !ok || !progress.Complete {
			return false
		}
	}
	return true
}

func classifyTask(snapshot *catalog.Snapshot, member *model.FormattedProgress, progress model.TaskProgress, task *model.TaskDefinition) model.TaskStatus {
	switch {
	case progress.Complete:
		return model.TaskCompleted
	case !progress.Invalid && taskUnlocked(snapshot, member, task):
		return model.TaskAvailable
	default:
		return model.TaskLocked
	}
}

func taskByID(member *model.FormattedProgress, id model.TaskID) (model.TaskProgress, bool) {
	// Tasks are sorted by id; see Formatter.
	n := sort.Search(len(member.Tasks), func(i int) bool { return member.Tasks[i].ID >= id })
	if n < len(member.Tasks) && member.Tasks[n].ID == id {
		return member.Tasks[n], true
	}
	return model.TaskProgress{}, false
}
