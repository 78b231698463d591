package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
)

func TeamSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.TeamType: {
				Name: model.TeamType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					"owner": {
						Name: "owner",
						Indexer: &memdb.StringFieldIndex{
							Field: "OwnerUUID",
						},
					},
				},
			},
		},
	}
}

type TeamRepository struct {
	db *io.MemoryStoreTxn // called "db" not to provoke transaction semantics
}

func NewTeamRepository(tx *io.MemoryStoreTxn) *TeamRepository {
	return &TeamRepository{db: tx}
}

func (r *TeamRepository) save(team *model.Team) error {
	return r.db.Insert(model.TeamType, team)
}

func (r *TeamRepository) Create(team *model.Team) error {
	return r.save(team)
}

func (r *TeamRepository) GetByID(id model.TeamUUID) (*model.Team, error) {
	raw, err := r.db.First(model.TeamType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Team), nil
}

func (r *TeamRepository) Update(team *model.Team) error {
	_, err := r.GetByID(team.UUID)
	if err != nil {
		return err
	}
	return r.save(team)
}

// Delete removes the team record for good. Teams are destroyed on owner
// leave, not archived.
func (r *TeamRepository) Delete(id model.TeamUUID) error {
	team, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.TeamType, team)
}

func (r *TeamRepository) List() ([]*model.Team, error) {
	iter, err := r.db.Get(model.TeamType, PK)
	if err != nil {
		return nil, err
	}

	list := []*model.Team{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Team))
	}
	return list, nil
}

func (r *TeamRepository) Iter(action func(*model.Team) (bool, error)) error {
	iter, err := r.db.Get(model.TeamType, PK)
	if err != nil {
		return err
	}

	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		next, err := action(raw.(*model.Team))
		if err != nil {
			return err
		}
		if !next {
			break
		}
	}
	return nil
}
