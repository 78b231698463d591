package usecase

import (
	"fmt"
	"time"

	"github.com/sethvargo/go-password/password"

	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
	"github.com/raidledger/progress/repo"
	"github.com/raidledger/progress/uuid"
)

// TeamService is the team membership state machine. Every operation
// runs against one write transaction spanning the team and membership
// tables: a failed precondition aborts before any write, and no partial
// write can ever be observed.
type TeamService struct {
	teams       *repo.TeamRepository
	memberships *repo.MembershipRepository

	now func() time.Time
}

func Teams(db *io.MemoryStoreTxn) *TeamService {
	return &TeamService{
		teams:       repo.NewTeamRepository(db),
		memberships: repo.NewMembershipRepository(db),
		now:         time.Now,
	}
}

func (s *TeamService) Create(owner model.UserUUID, teamPassword string, maximumMembers int) (*model.TeamMutationResult, error) {
	membership, err := s.memberships.GetOrDefault(owner)
	if err != nil {
		return nil, err
	}
	if membership.InTeam() {
		return nil, model.ErrAlreadyInTeam
	}
	if s.cooldownActive(membership) {
		return nil, model.ErrCooldownActive
	}

	if maximumMembers == 0 {
		maximumMembers = model.DefaultMaximumMembers
	}
	if maximumMembers < model.MinMaximumMembers || maximumMembers > model.MaxMaximumMembers {
		return nil, model.ErrBadMaximumMembers
	}

	if teamPassword == "" {
		teamPassword, err = password.Generate(model.GeneratedPasswordLength, 4, 0, false, false)
		if err != nil {
			return nil, fmt.Errorf("%w: generating team password: %v", model.ErrInternal, err)
		}
	}

	team := &model.Team{
		UUID:           uuid.New(),
		Version:        repo.NewResourceVersion(),
		OwnerUUID:      owner,
		Password:       teamPassword,
		MaximumMembers: maximumMembers,
		Members:        []model.UserUUID{owner},
		CreatedAt:      s.now().Unix(),
	}
	if err := s.teams.Create(team); err != nil {
		return nil, err
	}
	if err := s.putMembership(membership, team.UUID, membership.LeftTeamAt); err != nil {
		return nil, err
	}

	return &model.TeamMutationResult{Team: team, Password: team.Password}, nil
}

func (s *TeamService) Join(user model.UserUUID, teamID model.TeamUUID, teamPassword string) (*model.TeamMutationResult, error) {
	membership, err := s.memberships.GetOrDefault(user)
	if err != nil {
		return nil, err
	}
	if membership.InTeam() {
		return nil, model.ErrAlreadyInTeam
	}

	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team.Password != teamPassword {
		return nil, model.ErrWrongPassword
	}
	if team.IsFull() {
		return nil, model.ErrTeamFull
	}

	updated := *team
	updated.Members = append(append([]model.UserUUID{}, team.Members...), user)
	updated.Version = repo.NewResourceVersion()
	if err := s.teams.Update(&updated); err != nil {
		return nil, err
	}
	if err := s.putMembership(membership, team.UUID, membership.LeftTeamAt); err != nil {
		return nil, err
	}

	return &model.TeamMutationResult{Joined: true}, nil
}

func (s *TeamService) Leave(user model.UserUUID) (*model.TeamMutationResult, error) {
	membership, err := s.memberships.GetOrDefault(user)
	if err != nil {
		return nil, err
	}
	if !membership.InTeam() {
		return nil, model.ErrNotInTeam
	}

	team, err := s.teams.GetByID(membership.TeamUUID)
	if err == model.ErrNotFound {
		return nil, fmt.Errorf("%w: membership %q points to a missing team", model.ErrInternal, user)
	}
	if err != nil {
		return nil, err
	}

	if team.OwnerUUID == user {
		// The owner leaving destroys the team; there is no succession.
		for _, member := range team.Members {
			memberRecord, err := s.memberships.GetOrDefault(member)
			if err != nil {
				return nil, err
			}
			if err := s.putMembership(memberRecord, "", memberRecord.LeftTeamAt); err != nil {
				return nil, err
			}
		}
		if err := s.teams.Delete(team.UUID); err != nil {
			return nil, err
		}
		return &model.TeamMutationResult{Left: true}, nil
	}

	updated := *team
	updated.RemoveMember(user)
	updated.Version = repo.NewResourceVersion()
	if err := s.teams.Update(&updated); err != nil {
		return nil, err
	}
	if err := s.putMembership(membership, "", s.now().Unix()); err != nil {
		return nil, err
	}

	return &model.TeamMutationResult{Left: true}, nil
}

func (s *TeamService) Kick(caller, target model.UserUUID) (*model.TeamMutationResult, error) {
	if caller == target {
		return nil, model.ErrKickSelf
	}

	membership, err := s.memberships.GetOrDefault(caller)
	if err != nil {
		return nil, err
	}
	if !membership.InTeam() {
		return nil, model.ErrNotInTeam
	}

	team, err := s.teams.GetByID(membership.TeamUUID)
	if err != nil {
		return nil, err
	}
	if team.OwnerUUID != caller {
		return nil, model.ErrPermissionDenied
	}
	if !team.HasMember(target) {
		return nil, model.ErrNotFound
	}

	updated := *team
	updated.RemoveMember(target)
	updated.Version = repo.NewResourceVersion()
	if err := s.teams.Update(&updated); err != nil {
		return nil, err
	}

	targetMembership, err := s.memberships.GetOrDefault(target)
	if err != nil {
		return nil, err
	}
	// A kick does not put the target on the creation cooldown.
	if err := s.putMembership(targetMembership, "", targetMembership.LeftTeamAt); err != nil {
		return nil, err
	}

	return &model.TeamMutationResult{Kicked: true}, nil
}

func (s *TeamService) cooldownActive(membership *model.Membership) bool {
	if membership.LeftTeamAt == 0 {
		return false
	}
	deadline := time.Unix(membership.LeftTeamAt, 0).Add(model.CreateCooldown)
	return s.now().Before(deadline)
}

func (s *TeamService) putMembership(current *model.Membership, teamID model.TeamUUID, leftAt model.UnixTime) error {
	updated := *current
	updated.TeamUUID = teamID
	updated.LeftTeamAt = leftAt
	updated.Version = repo.NewResourceVersion()
	return s.memberships.Put(&updated)
}
