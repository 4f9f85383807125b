package models

import (
	"time"

	"campus-experiment/clubdesk/internal/constants"
)

// MediaAttachment is one image or video attached to a catalog item.
// Invariant: at most one attachment per item carries IsThumbnail.
type MediaAttachment struct {
	URL         string `json:"url"`
	Type        string `json:"type"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

// CatalogItem is a redeemable product with stock and point cost.
type CatalogItem struct {
	ID          int64                `json:"id"`
	ClubID      int64                `json:"club_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Cost        int64                `json:"cost"`
	Stock       int64                `json:"stock"`
	Type        string               `json:"type"`
	Status      constants.ItemStatus `json:"status"`
	Tags        []string             `json:"tags"`
	Media       []MediaAttachment    `json:"media"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Thumbnail returns the attachment flagged as thumbnail, or the first
// attachment when none is flagged, or nil for an item without media.
func (c *CatalogItem) Thumbnail() *MediaAttachment {
	for i := range c.Media {
		if c.Media[i].IsThumbnail {
			return &c.Media[i]
		}
	}
	if len(c.Media) > 0 {
		return &c.Media[0]
	}
	return nil
}
