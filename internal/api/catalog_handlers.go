package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/derive"
	"campus-experiment/clubdesk/internal/models/dtos/requests"
)

func catalogCriteria(r *http.Request) derive.CatalogCriteria {
	q := r.URL.Query()
	c := derive.CatalogCriteria{
		Search:  q.Get("search"),
		Type:    q.Get("type"),
		Status:  q.Get("status"),
		MaxCost: queryInt64(r, "max_cost"),
	}
	if tags := q.Get("tags"); tags != "" {
		c.Tags = strings.Split(tags, ",")
	}
	if from, ok := queryDate(r, "from"); ok {
		start := derive.StartOfDay(from)
		c.From = &start
	}
	if to, ok := queryDate(r, "to"); ok {
		end := derive.EndOfDay(to)
		c.To = &end
	}
	return c
}

func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, constants.ErrCodeValidation, "invalid item id")
		return 0, false
	}
	return id, true
}

// GetCatalog returns the derived catalog view for the caller's club.
func (h *Handlers) GetCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		sortKey := derive.SortKey(r.URL.Query().Get("sort"))

		view, err := h.deps.Services.Catalog.GetCatalog(r.Context(), claims.ClubID, catalogCriteria(r), sortKey)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

// CreateItem creates a catalog item.
func (h *Handlers) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		var req requests.CreateItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		item, err := h.deps.Services.Catalog.CreateItem(r.Context(), claims.ClubID, req)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, item)
	}
}

// UpdateItem patches a catalog item.
func (h *Handlers) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}
		var req requests.UpdateItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		item, err := h.deps.Services.Catalog.UpdateItem(r.Context(), claims.ClubID, itemID, req)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, item)
	}
}

// AdjustStock applies a signed stock delta to an item.
func (h *Handlers) AdjustStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}
		var req requests.StockDeltaRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		item, err := h.deps.Services.Catalog.AdjustStock(r.Context(), claims.ClubID, itemID, req.Delta)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, item)
	}
}

// ArchiveItem soft-removes an item from the catalog.
func (h *Handlers) ArchiveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		item, err := h.deps.Services.Catalog.ArchiveItem(r.Context(), claims.ClubID, itemID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, item)
	}
}

// DeleteItem hard-deletes an item.
func (h *Handlers) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		itemID, ok := itemIDParam(w, r)
		if !ok {
			return
		}

		if err := h.deps.Services.Catalog.DeleteItem(r.Context(), claims.ClubID, itemID); err != nil {
			respondWithDomainError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &struct {
			Deleted int64 `json:"deleted"`
		}{Deleted: itemID})
	}
}
