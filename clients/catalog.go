// Package clients defines the interfaces of external collaborators the
// engine consumes. Real implementations live with the host service;
// the engine only depends on the contracts.
package clients

import (
	"context"

	log "github.com/hashicorp/go-hclog"

	"github.com/raidledger/progress/catalog"
)

// CatalogClient fetches the current task/hideout catalog snapshot from
// the external catalog service. The periodic sync job driving it is
// owned by the host.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]byte, error)
}

// Refresher turns fetched catalog payloads into published snapshots.
// Replacing the snapshot rebuilds the prerequisite graph and drops all
// memoized closures in one swap.
type Refresher struct {
	client CatalogClient
	holder *catalog.Holder
	logger log.Logger
}

func NewRefresher(client CatalogClient, holder *catalog.Holder, logger log.Logger) *Refresher {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Refresher{client: client, holder: holder, logger: logger}
}

func (r *Refresher) Refresh(ctx context.Context) error {
	data, err := r.client.FetchCatalog(ctx)
	if err != nil {
		return err
	}

	snapshot := catalog.Load(data, r.logger)
	r.holder.Replace(snapshot)
	r.logger.Info("catalog snapshot replaced", "tasks", len(snapshot.TaskIDs()))
	return nil
}
