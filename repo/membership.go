package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
)

func MembershipSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.MembershipType: {
				Name: model.MembershipType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UserUUID",
						},
					},
					TeamForeignPK: {
						Name:         TeamForeignPK,
						AllowMissing: true,
						Indexer: &memdb.StringFieldIndex{
							Field: "TeamUUID",
						},
					},
				},
			},
		},
	}
}

type MembershipRepository struct {
	db *io.MemoryStoreTxn // called "db" not to provoke transaction semantics
}

func NewMembershipRepository(tx *io.MemoryStoreTxn) *MembershipRepository {
	return &MembershipRepository{db: tx}
}

func (r *MembershipRepository) save(membership *model.Membership) error {
	return r.db.Insert(model.MembershipType, membership)
}

func (r *MembershipRepository) Put(membership *model.Membership) error {
	return r.save(membership)
}

func (r *MembershipRepository) GetByUser(id model.UserUUID) (*model.Membership, error) {
	raw, err := r.db.First(model.MembershipType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Membership), nil
}

// GetOrDefault never fails on an absent record: a user without a
// membership document is simply teamless.
func (r *MembershipRepository) GetOrDefault(id model.UserUUID) (*model.Membership, error) {
	membership, err := r.GetByUser(id)
	if err == model.ErrNotFound {
		return &model.Membership{UserUUID: id}, nil
	}
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *MembershipRepository) ListByTeam(teamID model.TeamUUID) ([]*model.Membership, error) {
	iter, err := r.db.Get(model.MembershipType, TeamForeignPK, teamID)
	if err != nil {
		return nil, err
	}

	list := []*model.Membership{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Membership))
	}
	return list, nil
}
