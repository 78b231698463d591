package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raidledger/progress/fixtures"
	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
	"github.com/raidledger/progress/repo"
)

func Test_Create_Defaults(t *testing.T) {
	store := runFixtures(t)

	result := createTeam(t, store, fixtures.UserUUID1, "", 0)

	require.NotNil(t, result.Team)
	require.Len(t, result.Password, model.GeneratedPasswordLength)
	require.Equal(t, model.DefaultMaximumMembers, result.Team.MaximumMembers)
	require.Equal(t, fixtures.UserUUID1, result.Team.OwnerUUID)
	require.Equal(t, []model.UserUUID{fixtures.UserUUID1}, result.Team.Members)
	verifyTeamInvariants(t, store)
}

func Test_Create_BadMaximumMembers(t *testing.T) {
	store := runFixtures(t)

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Create(fixtures.UserUUID1, "", 42)
		return err
	})
	require.ErrorIs(t, err, model.ErrBadMaximumMembers)
	require.Equal(t, model.KindValidation, model.KindOf(err))
}

func Test_Create_AlreadyInTeam(t *testing.T) {
	store := runFixtures(t)
	createTeam(t, store, fixtures.UserUUID1, "", 0)

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Create(fixtures.UserUUID1, "", 0)
		return err
	})
	require.ErrorIs(t, err, model.ErrAlreadyInTeam)
	require.Equal(t, model.KindPreconditionFailed, model.KindOf(err))
}

func Test_Create_Cooldown(t *testing.T) {
	store := runFixtures(t)
	now := time.Now()

	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "pass")
	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Leave(fixtures.UserUUID2)
		return err
	})
	require.NoError(t, err)

	// Inside the window the create is refused.
	err = store.RunTransaction(func(txn *io.MemoryStoreTxn) error {
		s := Teams(txn)
		s.now = func() time.Time { return now.Add(model.CreateCooldown / 2) }
		_, err := s.Create(fixtures.UserUUID2, "", 0)
		return err
	})
	require.ErrorIs(t, err, model.ErrCooldownActive)

	// Once it elapses the create succeeds.
	err = store.RunTransaction(func(txn *io.MemoryStoreTxn) error {
		s := Teams(txn)
		s.now = func() time.Time { return now.Add(model.CreateCooldown + time.Minute) }
		_, err := s.Create(fixtures.UserUUID2, "", 0)
		return err
	})
	require.NoError(t, err)
	verifyTeamInvariants(t, store)
}

func Test_Join(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "hunter2", 0)

	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "hunter2")

	tx := store.Txn(false)
	defer tx.Abort()
	team, err := repo.NewTeamRepository(tx).GetByID(result.Team.UUID)
	require.NoError(t, err)
	require.Equal(t, []model.UserUUID{fixtures.UserUUID1, fixtures.UserUUID2}, team.Members)
	verifyTeamInvariants(t, store)
}

func Test_Join_Failures(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "hunter2", model.MinMaximumMembers)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "hunter2")

	cases := []struct {
		name     string
		user     model.UserUUID
		teamID   model.TeamUUID
		password string
		expected error
	}{
		{"already in team", fixtures.UserUUID2, result.Team.UUID, "hunter2", model.ErrAlreadyInTeam},
		{"team not found", fixtures.UserUUID3, fixtures.TeamUUID2, "hunter2", model.ErrNotFound},
		{"wrong password", fixtures.UserUUID3, result.Team.UUID, "wrong", model.ErrWrongPassword},
		{"team full", fixtures.UserUUID3, result.Team.UUID, "hunter2", model.ErrTeamFull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mutate(t, store, func(s *TeamService) error {
				_, err := s.Join(tc.user, tc.teamID, tc.password)
				return err
			})
			require.ErrorIs(t, err, tc.expected)
		})
	}
	verifyTeamInvariants(t, store)
}

func Test_Leave_Member(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "pass")

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Leave(fixtures.UserUUID2)
		return err
	})
	require.NoError(t, err)

	tx := store.Txn(false)
	defer tx.Abort()
	team, err := repo.NewTeamRepository(tx).GetByID(result.Team.UUID)
	require.NoError(t, err)
	require.Equal(t, []model.UserUUID{fixtures.UserUUID1}, team.Members)

	membership, err := repo.NewMembershipRepository(tx).GetByUser(fixtures.UserUUID2)
	require.NoError(t, err)
	require.False(t, membership.InTeam())
	require.NotZero(t, membership.LeftTeamAt)
	verifyTeamInvariants(t, store)
}

func Test_Leave_Owner_DestroysTeam(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "pass")
	joinTeam(t, store, fixtures.UserUUID3, result.Team.UUID, "pass")

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Leave(fixtures.UserUUID1)
		return err
	})
	require.NoError(t, err)

	tx := store.Txn(false)
	defer tx.Abort()
	_, err = repo.NewTeamRepository(tx).GetByID(result.Team.UUID)
	require.ErrorIs(t, err, model.ErrNotFound)

	memberships := repo.NewMembershipRepository(tx)
	for _, user := range []model.UserUUID{fixtures.UserUUID1, fixtures.UserUUID2, fixtures.UserUUID3} {
		membership, err := memberships.GetOrDefault(user)
		require.NoError(t, err)
		require.False(t, membership.InTeam())
	}
	verifyTeamInvariants(t, store)
}

func Test_Leave_NotInTeam(t *testing.T) {
	store := runFixtures(t)

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Leave(fixtures.UserUUID1)
		return err
	})
	require.ErrorIs(t, err, model.ErrNotInTeam)
}

func Test_Kick(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "pass")

	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Kick(fixtures.UserUUID1, fixtures.UserUUID2)
		return err
	})
	require.NoError(t, err)

	tx := store.Txn(false)
	defer tx.Abort()
	membership, err := repo.NewMembershipRepository(tx).GetByUser(fixtures.UserUUID2)
	require.NoError(t, err)
	require.False(t, membership.InTeam())
	// No cooldown after a kick: the target may create a team right away.
	require.Zero(t, membership.LeftTeamAt)
	verifyTeamInvariants(t, store)
}

func Test_Kick_Failures(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)
	joinTeam(t, store, fixtures.UserUUID2, result.Team.UUID, "pass")

	cases := []struct {
		name     string
		caller   model.UserUUID
		target   model.UserUUID
		expected error
	}{
		{"self kick", fixtures.UserUUID1, fixtures.UserUUID1, model.ErrKickSelf},
		{"caller not in team", fixtures.UserUUID3, fixtures.UserUUID2, model.ErrNotInTeam},
		{"caller not owner", fixtures.UserUUID2, fixtures.UserUUID1, model.ErrPermissionDenied},
		{"target not a member", fixtures.UserUUID1, fixtures.UserUUID3, model.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mutate(t, store, func(s *TeamService) error {
				_, err := s.Kick(tc.caller, tc.target)
				return err
			})
			require.ErrorIs(t, err, tc.expected)
		})
	}
	verifyTeamInvariants(t, store)
}

// Concurrent mutations must leave the invariants intact: each operation
// is one atomic transaction, serialized by the store.
func Test_ConcurrentMutations_InvariantsHold(t *testing.T) {
	store := runFixtures(t)
	result := createTeam(t, store, fixtures.UserUUID1, "pass", 0)

	users := []model.UserUUID{fixtures.UserUUID2, fixtures.UserUUID3, fixtures.UserUUID4, fixtures.UserUUID5}
	var wg sync.WaitGroup
	for _, user := range users {
		wg.Add(1)
		go func(user model.UserUUID) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = store.RunTransaction(func(txn *io.MemoryStoreTxn) error {
					_, err := Teams(txn).Join(user, result.Team.UUID, "pass")
					return err
				})
				_ = store.RunTransaction(func(txn *io.MemoryStoreTxn) error {
					_, err := Teams(txn).Leave(user)
					return err
				})
			}
		}(user)
	}
	wg.Wait()

	verifyTeamInvariants(t, store)
}
