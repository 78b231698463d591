package usecase

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/raidledger/progress/catalog"
	"github.com/raidledger/progress/fixtures"
	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
	"github.com/raidledger/progress/repo"
)

func runFixtures(t *testing.T, fixtureFuncs ...func(t *testing.T, store *io.MemoryStore)) *io.MemoryStore {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, hclog.NewNullLogger())
	require.NoError(t, err)
	for _, fixture := range fixtureFuncs {
		fixture(t, store)
	}
	return store
}

func progressFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	progressRepo := repo.NewUserProgressRepository(tx)
	for _, record := range fixtures.Progresses() {
		tmp := record
		err := progressRepo.Put(&tmp)
		require.NoError(t, err)
	}
	err := tx.Commit()
	require.NoError(t, err)
}

func testSnapshot() *catalog.Snapshot {
	return catalog.Build(fixtures.Tasks(), fixtures.Stations(), hclog.NewNullLogger())
}

func testHolder() *catalog.Holder {
	return catalog.NewHolder(testSnapshot())
}

// mutate runs one team operation as its own atomic transaction.
func mutate(t *testing.T, store *io.MemoryStore, fn func(s *TeamService) error) error {
	t.Helper()
	return store.RunTransaction(func(txn *io.MemoryStoreTxn) error {
		return fn(Teams(txn))
	})
}

func createTeam(t *testing.T, store *io.MemoryStore, owner model.UserUUID, password string, maximumMembers int) *model.TeamMutationResult {
	t.Helper()
	var result *model.TeamMutationResult
	err := mutate(t, store, func(s *TeamService) error {
		var err error
		result, err = s.Create(owner, password, maximumMembers)
		return err
	})
	require.NoError(t, err)
	return result
}

func joinTeam(t *testing.T, store *io.MemoryStore, user model.UserUUID, teamID model.TeamUUID, password string) {
	t.Helper()
	err := mutate(t, store, func(s *TeamService) error {
		_, err := s.Join(user, teamID, password)
		return err
	})
	require.NoError(t, err)
}

// verifyTeamInvariants checks bidirectional team/membership consistency
// and the capacity bound after any sequence of mutations.
func verifyTeamInvariants(t *testing.T, store *io.MemoryStore) {
	t.Helper()
	tx := store.Txn(false)
	defer tx.Abort()

	teams := repo.NewTeamRepository(tx)
	memberships := repo.NewMembershipRepository(tx)

	all, err := teams.List()
	require.NoError(t, err)
	for _, team := range all {
		require.LessOrEqual(t, len(team.Members), team.MaximumMembers)
		require.True(t, team.HasMember(team.OwnerUUID))
		for _, member := range team.Members {
			membership, err := memberships.GetByUser(member)
			require.NoError(t, err)
			require.Equal(t, team.UUID, membership.TeamUUID)
		}

		linked, err := memberships.ListByTeam(team.UUID)
		require.NoError(t, err)
		for _, membership := range linked {
			require.True(t, team.HasMember(membership.UserUUID))
		}
	}
}
