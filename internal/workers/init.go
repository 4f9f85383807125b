package workers

import (
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/providers"
)

type WorkersContainer struct {
	WalletRefresher *WalletCacheWorker
}

// InitWorkers starts the background workers. Currently that is the club
// wallet refresher, which keeps leader dashboards warm between requests.
func InitWorkers(
	provider providers.CampusProvider,
	cache common.CacheInterface,
	refreshInterval time.Duration,
) *WorkersContainer {
	refresher := NewWalletCacheWorker(provider, cache, refreshInterval)

	go refresher.Start()

	return &WorkersContainer{
		WalletRefresher: refresher,
	}
}
