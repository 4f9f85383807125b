package api

import (
	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/config"
	"campus-experiment/clubdesk/internal/db"
	"campus-experiment/clubdesk/internal/db/repositories"
	"campus-experiment/clubdesk/internal/providers"
	"campus-experiment/clubdesk/internal/services"
)

type Repositories struct {
	Drafts *repositories.DraftRepository
	Prefs  *repositories.PrefsRepository
}

type Services struct {
	Cache      common.CacheInterface
	Attendance *services.AttendanceService
	Catalog    *services.CatalogService
	Wallet     *services.WalletService
	Activity   *services.ActivityService
}

type Dependencies struct {
	Provider providers.CampusProvider
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires the provider, repositories and services. The
// cache implementation is injected so single-instance deployments run on
// the in-process cache while multi-instance ones share Redis.
func InitDependencies(cfg config.App, cache common.CacheInterface) (*Dependencies, error) {
	provider := providers.NewCampusAPIProvider(cfg.CampusAPIBase, cfg.CampusAPIKey, cfg.CampusAPITimeout)

	repos := &Repositories{
		Drafts: repositories.NewDraftRepository(db.PgDB),
		Prefs:  repositories.NewPrefsRepository(db.DB),
	}

	attendanceSvc := services.NewAttendanceService(provider, cache, repos.Drafts, cfg.MemberCacheTTL)

	svcs := &Services{
		Cache:      cache,
		Attendance: attendanceSvc,
		Catalog:    services.NewCatalogService(provider, cache, cfg.MemberCacheTTL),
		Wallet:     services.NewWalletService(provider, cache, repos.Prefs, attendanceSvc, cfg.WalletCacheTTL),
		Activity:   services.NewActivityService(provider, cache, cfg.WalletCacheTTL),
	}

	return &Dependencies{
		Provider: provider,
		Repo:     repos,
		Services: svcs,
	}, nil
}
