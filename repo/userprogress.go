package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/raidledger/progress/io"
	"github.com/raidledger/progress/model"
)

func UserProgressSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.UserProgressType: {
				Name: model.UserProgressType,
				Indexes: map[string]*memdb.IndexSchema{
					// One record per (user, game mode): the two game modes are
					// independent progress universes.
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "UserUUID"},
								&memdb.StringFieldIndex{Field: "GameMode"},
							},
						},
					},
					UserForeignPK: {
						Name: UserForeignPK,
						Indexer: &memdb.StringFieldIndex{
							Field: "UserUUID",
						},
					},
				},
			},
		},
	}
}

type UserProgressRepository struct {
	db *io.MemoryStoreTxn // called "db" not to provoke transaction semantics
}

func NewUserProgressRepository(tx *io.MemoryStoreTxn) *UserProgressRepository {
	return &UserProgressRepository{db: tx}
}

func (r *UserProgressRepository) Put(record *model.UserProgressRecord) error {
	record.Version = NewResourceVersion()
	return r.db.Insert(model.UserProgressType, record)
}

// GetByUserMode returns the raw record, or model.ErrNotFound. Absence is
// not exceptional for the read path: the formatter substitutes defaults.
func (r *UserProgressRepository) GetByUserMode(id model.UserUUID, mode model.GameMode) (*model.UserProgressRecord, error) {
	raw, err := r.db.First(model.UserProgressType, PK, id, string(mode))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.UserProgressRecord), nil
}

func (r *UserProgressRepository) ListByUser(id model.UserUUID) ([]*model.UserProgressRecord, error) {
	iter, err := r.db.Get(model.UserProgressType, UserForeignPK, id)
	if err != nil {
		return nil, err
	}

	list := []*model.UserProgressRecord{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.UserProgressRecord))
	}
	return list, nil
}
