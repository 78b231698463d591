package io

import (
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-memdb"

	"github.com/raidledger/progress/model"
)

type MemoryStorableObject interface {
	ObjType() string
	ObjId() string
}

// MemoryStore wraps go-memdb. A write transaction spanning several
// tables is the unit of atomicity: either every record it touched is
// committed, or none is.
type MemoryStore struct {
	*memdb.MemDB

	hookMutex sync.RWMutex
	hooks     map[string][]ObjectHook

	logger log.Logger
}

type MemoryStoreTxn struct {
	*memdb.Txn

	memstore *MemoryStore // crosslink
}

func NewMemoryStore(schema *memdb.DBSchema, logger log.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}

	return &MemoryStore{
		MemDB:  db,
		hooks:  map[string][]ObjectHook{},
		logger: logger,
	}, nil
}

func (ms *MemoryStore) Txn(write bool) *MemoryStoreTxn {
	mTxn := ms.MemDB.Txn(write)
	if write {
		mTxn.TrackChanges()
	}
	return &MemoryStoreTxn{mTxn, ms}
}

func (mst *MemoryStoreTxn) runCommitHooks() error {
	changes := mst.Txn.Changes()

	for _, change := range changes {
		obj := change.After
		event := HookEventInsert
		if change.After == nil {
			obj = change.Before
			event = HookEventDelete
		}

		storable, ok := obj.(MemoryStorableObject)
		if !ok {
			continue
		}

		mst.memstore.hookMutex.RLock()
		hooks := mst.memstore.hooks[storable.ObjType()]
		mst.memstore.hookMutex.RUnlock()

		for _, hook := range hooks {
			if !hook.handles(event) {
				continue
			}
			if err := hook.CallbackFn(mst, event, storable); err != nil {
				return fmt.Errorf("hook for %q: %w", storable.ObjType(), err)
			}
		}
	}
	return nil
}

func (mst *MemoryStoreTxn) Commit() error {
	if err := mst.runCommitHooks(); err != nil {
		mst.memstore.logger.Error("transaction aborted", "error", err)
		mst.Txn.Abort()
		return err
	}

	mst.Txn.Commit()
	return nil
}

func (mst *MemoryStoreTxn) Abort() {
	mst.Txn.Abort()
}

// RunTransaction executes fn inside a single write transaction and
// commits it. Commit failures are retried with exponential backoff;
// exhausted retries surface as model.ErrInternal. An error returned by
// fn aborts immediately without retry: failed preconditions are not
// transient.
func (ms *MemoryStore) RunTransaction(fn func(txn *MemoryStoreTxn) error) error {
	var fnErr error
	attempt := func() error {
		txn := ms.Txn(true)
		defer txn.Abort()

		if err := fn(txn); err != nil {
			fnErr = err
			return backoff.Permanent(err)
		}
		fnErr = nil
		return txn.Commit()
	}

	err := backoff.Retry(attempt, transactionBackoff())
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		ms.logger.Error("transaction retries exhausted", "error", err)
		return fmt.Errorf("%w: %v", model.ErrInternal, err)
	}
	return nil
}

func transactionBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 100 * time.Millisecond
	return backoff.WithMaxRetries(bo, 5)
}
