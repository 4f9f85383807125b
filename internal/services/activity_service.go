package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
)

// ActivityService builds the unified activity history by fanning out to
// the four upstream sources, normalizing each, and merging the results
// into one ordered, filterable collection. The merged history is
// read-only; nothing here mutates upstream state.
type ActivityService struct {
	provider providers.CampusProvider
	cache    common.CacheInterface
	ttl      time.Duration
}

func NewActivityService(provider providers.CampusProvider, cache common.CacheInterface, ttl time.Duration) *ActivityService {
	return &ActivityService{provider: provider, cache: cache, ttl: ttl}
}

// GetHistory returns the merged history for a user under the given
// criteria, newest first, with per-kind and per-status counts.
func (s *ActivityService) GetHistory(ctx context.Context, userID int64, criteria derive.ActivityCriteria) (*responses.ActivityView, error) {
	records, err := s.merged(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := derive.FilterActivity(records, criteria)
	visible = derive.SortActivity(visible, derive.SortDateDesc)
	summary := derive.SummarizeActivity(visible)

	return &responses.ActivityView{
		Records:       visible,
		CountsByKind:  summary.CountsByKind,
		CountsByState: summary.CountsByStatus,
		Total:         summary.Total,
	}, nil
}

// merged fetches all four sources concurrently. A failure in any source
// fails the whole load: the history screen surfaces one error with a
// retry, not a silently incomplete list.
func (s *ActivityService) merged(ctx context.Context, userID int64) ([]models.ActivityRecord, error) {
	cacheKey := string(constants.CachePrefixActivity) + fmt.Sprint(userID)
	if cached, found := s.cache.Get(cacheKey); found {
		if records, ok := cached.([]models.ActivityRecord); ok {
			return records, nil
		}
	}

	var (
		memberships   []models.ActivityRecord
		clubApps      []models.ActivityRecord
		orders        []models.ActivityRecord
		registrations []models.ActivityRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.provider.FetchMembershipApplications(gctx, userID)
		if err != nil {
			return err
		}
		memberships = normalize.Applications(resp.Applications, constants.ActivityMembershipApplication)
		return nil
	})
	g.Go(func() error {
		resp, err := s.provider.FetchClubApplications(gctx, userID)
		if err != nil {
			return err
		}
		clubApps = normalize.Applications(resp.Applications, constants.ActivityClubApplication)
		return nil
	})
	g.Go(func() error {
		resp, err := s.provider.FetchOrders(gctx, userID)
		if err != nil {
			return err
		}
		orders = normalize.Orders(resp.Orders)
		return nil
	})
	g.Go(func() error {
		resp, err := s.provider.FetchEventRegistrations(gctx, userID)
		if err != nil {
			return err
		}
		registrations = normalize.Registrations(resp.Registrations)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]models.ActivityRecord, 0,
		len(memberships)+len(clubApps)+len(orders)+len(registrations))
	merged = append(merged, memberships...)
	merged = append(merged, clubApps...)
	merged = append(merged, orders...)
	merged = append(merged, registrations...)

	s.cache.Set(cacheKey, merged, s.ttl)
	return merged, nil
}

// Invalidate drops a user's cached history, e.g. after a redemption.
func (s *ActivityService) Invalidate(userID int64) {
	s.cache.Delete(string(constants.CachePrefixActivity) + fmt.Sprint(userID))
}
