package services

import (
	"fmt"
	"time"

	"context"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos/requests"
	"campus-experiment/clubdesk/internal/models/dtos/responses"
	"campus-experiment/clubdesk/internal/normalize"
	"campus-experiment/clubdesk/internal/providers"
)

// CatalogService serves the product catalog screens: the normalized,
// filtered, sorted list with its aggregates, and the item mutations.
// Every mutation invalidates the club's cached catalog so the next read
// re-fetches truth.
type CatalogService struct {
	provider providers.CampusProvider
	cache    common.CacheInterface
	ttl      time.Duration
}

func NewCatalogService(provider providers.CampusProvider, cache common.CacheInterface, ttl time.Duration) *CatalogService {
	return &CatalogService{provider: provider, cache: cache, ttl: ttl}
}

func (s *CatalogService) cacheKey(clubID int64) string {
	return string(constants.CachePrefixCatalog) + fmt.Sprint(clubID)
}

// items returns the normalized catalog, served from cache when fresh.
func (s *CatalogService) items(ctx context.Context, clubID int64) ([]models.CatalogItem, error) {
	if cached, found := s.cache.Get(s.cacheKey(clubID)); found {
		if items, ok := cached.([]models.CatalogItem); ok {
			return items, nil
		}
	}

	raw, err := s.provider.FetchCatalog(ctx, clubID)
	if err != nil {
		return nil, err
	}
	items := normalize.CatalogItems(raw.Items)
	s.cache.Set(s.cacheKey(clubID), items, s.ttl)
	return items, nil
}

// GetCatalog derives the catalog view for a club under the given
// criteria and sort key.
func (s *CatalogService) GetCatalog(ctx context.Context, clubID int64, criteria derive.CatalogCriteria, key derive.SortKey) (*responses.CatalogView, error) {
	items, err := s.items(ctx, clubID)
	if err != nil {
		return nil, err
	}

	visible := derive.FilterCatalog(items, criteria)
	visible = derive.SortCatalog(visible, key)
	summary := derive.SummarizeCatalog(visible)

	return &responses.CatalogView{
		Items:      visible,
		Summary:    summary.Counts,
		Total:      summary.Total,
		TotalStock: summary.TotalStock,
	}, nil
}

// CreateItem validates and creates a product, then invalidates the cache.
func (s *CatalogService) CreateItem(ctx context.Context, clubID int64, req requests.CreateItemRequest) (*models.CatalogItem, error) {
	if req.Name == "" || req.Cost < 0 || req.Stock < 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "item needs a name, a non-negative cost and non-negative stock",
		}
	}

	fields := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"cost":        req.Cost,
		"stock":       req.Stock,
		"type":        req.Type,
		"tags":        req.Tags,
		"media_urls":  req.MediaURLs,
	}
	raw, err := s.provider.CreateCatalogItem(ctx, clubID, fields)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(s.cacheKey(clubID))
	item := normalize.CatalogItem(*raw)
	if item == nil {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeServer,
			Message: "upstream returned a malformed item",
		}
	}
	return item, nil
}

// UpdateItem patches a product and invalidates its club's cache.
func (s *CatalogService) UpdateItem(ctx context.Context, clubID, itemID int64, req requests.UpdateItemRequest) (*models.CatalogItem, error) {
	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, &providers.ProviderError{
				Code:    constants.ErrCodeValidation,
				Message: "cost cannot be negative",
			}
		}
		patch["cost"] = *req.Cost
	}
	if req.Status != nil {
		patch["status"] = string(constants.ParseItemStatus(*req.Status))
	}
	if req.Tags != nil {
		patch["tags"] = *req.Tags
	}
	if len(patch) == 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "empty patch",
		}
	}

	raw, err := s.provider.UpdateCatalogItem(ctx, itemID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(s.cacheKey(clubID))
	return normalize.CatalogItem(*raw), nil
}

// AdjustStock applies a signed stock delta.
func (s *CatalogService) AdjustStock(ctx context.Context, clubID, itemID, delta int64) (*models.CatalogItem, error) {
	if delta == 0 {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "stock delta cannot be zero",
		}
	}
	raw, err := s.provider.AdjustStock(ctx, itemID, delta)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(s.cacheKey(clubID))
	return normalize.CatalogItem(*raw), nil
}

// ArchiveItem is the normal removal flow: the item is archived, not
// deleted, so past orders keep a referent.
func (s *CatalogService) ArchiveItem(ctx context.Context, clubID, itemID int64) (*models.CatalogItem, error) {
	archived := string(constants.ItemArchived)
	return s.UpdateItem(ctx, clubID, itemID, requests.UpdateItemRequest{Status: &archived})
}

// DeleteItem hard-deletes a product. Kept for admin cleanup only.
func (s *CatalogService) DeleteItem(ctx context.Context, clubID, itemID int64) error {
	if err := s.provider.DeleteCatalogItem(ctx, itemID); err != nil {
		return err
	}
	s.cache.Delete(s.cacheKey(clubID))
	return nil
}
