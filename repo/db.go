package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/raidledger/progress/uuid"
)

const (
	// PK is the alias for "id". Index "id" is required by all tables.
	// In the domain, the primary key is not always "id".
	PK = "id"

	TeamForeignPK = "team_uuid"
	UserForeignPK = "user_uuid"
)

func mergeSchema() (*memdb.DBSchema, error) {
	included := []*memdb.DBSchema{
		TeamSchema(),
		MembershipSchema(),
		UserProgressSchema(),
	}

	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{},
	}

	for _, s := range included {
		for name, table := range s.Tables {
			if _, ok := schema.Tables[name]; ok {
				return nil, fmt.Errorf("table %q already there", name)
			}
			schema.Tables[name] = table
		}
	}

	err := schema.Validate()
	if err != nil {
		return nil, err
	}
	return schema, nil
}

func GetSchema() (*memdb.DBSchema, error) {
	return mergeSchema()
}

func NewResourceVersion() string {
	return uuid.New()
}
