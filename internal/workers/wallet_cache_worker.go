package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
)

// TrackQueue receives the ids of clubs whose wallet should be kept warm.
// Handlers push here non-blocking; a full queue just means the club gets
// picked up on a later request.
var TrackQueue = make(chan int64, 100)

// WalletCacheWorker periodically re-fetches the club wallets it has seen
// so leader dashboards read a warm balance instead of waiting on the
// campus API.
type WalletCacheWorker struct {
	provider providers.CampusProvider
	cache    common.CacheInterface
	interval time.Duration

	mu      sync.Mutex
	tracked map[int64]struct{}

	stop chan struct{}
}

func NewWalletCacheWorker(provider providers.CampusProvider, cache common.CacheInterface, interval time.Duration) *WalletCacheWorker {
	return &WalletCacheWorker{
		provider: provider,
		cache:    cache,
		interval: interval,
		tracked:  make(map[int64]struct{}),
		stop:     make(chan struct{}),
	}
}

func (w *WalletCacheWorker) Start() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case clubID := <-TrackQueue:
			w.mu.Lock()
			w.tracked[clubID] = struct{}{}
			w.mu.Unlock()
		case <-ticker.C:
			w.refreshAll()
		case <-w.stop:
			return
		}
	}
}

func (w *WalletCacheWorker) Stop() {
	close(w.stop)
}

func (w *WalletCacheWorker) refreshAll() {
	w.mu.Lock()
	ids := make([]int64, 0, len(w.tracked))
	for id := range w.tracked {
		ids = append(ids, id)
	}
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	for _, clubID := range ids {
		raw, err := w.provider.FetchClubWallet(ctx, clubID)
		if err != nil {
			logging.Warn("club wallet refresh failed", "club_id", clubID, "error", err.Error())
			continue
		}
		wallet := normalize.ClubWallet(raw)
		if wallet == nil {
			continue
		}
		w.cache.Set(string(constants.CachePrefixClubWallet)+fmt.Sprint(clubID), wallet, 2*w.interval)
	}

	if len(ids) > 0 {
		logging.Debug("club wallet caches refreshed", "clubs", len(ids))
	}
}
