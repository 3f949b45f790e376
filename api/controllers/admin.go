package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/invisimart/storefront-web/api/responses"
	"github.com/invisimart/storefront-web/api/validators"
	"github.com/invisimart/storefront-web/internal/catalog"
	"github.com/invisimart/storefront-web/internal/health"
	"github.com/invisimart/storefront-web/pkg/logger"
	"github.com/invisimart/storefront-web/pkg/pagination"
)

type inventoryLister interface {
	ListInventory(ctx context.Context) ([]catalog.InventoryItem, error)
}

type eventLister interface {
	ListEvents(ctx context.Context) ([]catalog.InventoryEvent, error)
}

type healthSnapshotter interface {
	Snapshot() []health.ComponentHealth
	CheckNow(ctx context.Context) []health.ComponentHealth
}

type inventoryRow struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Image             string    `json:"image"`
	Price             float64   `json:"price"`
	OnlineStock       int       `json:"onlineStock"`
	InStoreStock      int       `json:"inStoreStock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LastUpdated       time.Time `json:"lastUpdated"`
	OnlineInStock     bool      `json:"onlineInStock"`
	InStoreInStock    bool      `json:"inStoreInStock"`
	LowStock          bool      `json:"lowStock"`
}

type eventListView struct {
	Events []catalog.InventoryEvent `json:"events"`
	Total  int                      `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

// AdminInventory serves the stock table with a low-stock flag per row.
func AdminInventory(svc inventoryLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListInventory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows := make([]inventoryRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, inventoryRow{
				ID:                item.ID,
				Name:              item.Name,
				Image:             item.Image,
				Price:             item.Price,
				OnlineStock:       item.OnlineStock,
				InStoreStock:      item.InStoreStock,
				LowStockThreshold: item.LowStockThreshold,
				LastUpdated:       item.LastUpdated,
				OnlineInStock:     item.OnlineInStock,
				InStoreInStock:    item.InStoreInStock,
				LowStock:          item.OnlineStock <= item.LowStockThreshold,
			})
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminEvents serves the inventory change log. The upstream is fetch-all, so
// the event-type filter and limit/offset paging are applied to the local copy
// for presentation only. An absent limit returns the whole set, matching the
// dashboard's default view; an explicit limit is capped.
func AdminEvents(svc eventLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := validators.QueryOneOf(r, "filter", "all", "purchase", "restock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.QueryInt(r, "offset", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		events, err := svc.ListEvents(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if filter != "" && filter != "all" {
			filtered := events[:0:0]
			for _, event := range events {
				if event.EventType == filter {
					filtered = append(filtered, event)
				}
			}
			events = filtered
		}

		if limit > 0 {
			limit = pagination.NormalizeLimit(limit)
		}
		page := pagination.Page(events, pagination.Params{Limit: limit, Offset: offset})

		responses.WriteSuccess(w, eventListView{
			Events: page,
			Total:  len(events),
			Limit:  limit,
			Offset: pagination.NormalizeOffset(offset),
		})
	}
}

// AdminHealth serves the latest monitor snapshot for the dashboard panels.
// ?refresh=true runs a probe round synchronously instead of waiting for the
// next poll tick.
func AdminHealth(monitor healthSnapshotter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, err := validators.QueryOneOf(r, "refresh", "true", "false")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if refresh == "true" {
			responses.WriteSuccess(w, monitor.CheckNow(r.Context()))
			return
		}
		responses.WriteSuccess(w, monitor.Snapshot())
	}
}
