package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/invisimart/storefront-web/api/middleware"
	"github.com/invisimart/storefront-web/api/responses"
	"github.com/invisimart/storefront-web/api/validators"
	"github.com/invisimart/storefront-web/internal/cart"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

type cartAddRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
	Quantity *int    `json:"quantity" validate:"omitempty,min=1"`
}

type cartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartItemView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type cartView struct {
	Items      []cartItemView `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice float64        `json:"totalPrice"`
}

// CartFetch returns the session cart with totals, feeding badges and the cart
// page alike.
func CartFetch(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c, err := store.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(c.SnapshotView()))
	}
}

// CartAdd merges an item into the session cart. An id already in the cart
// increments that line's quantity instead of duplicating it.
func CartAdd(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		item := cart.Item{
			ID:       payload.ID,
			Name:     payload.Name,
			Price:    decimal.NewFromFloat(payload.Price),
			Image:    payload.Image,
			Quantity: quantity,
		}

		view, err := mutateCart(r.Context(), store, sessionID, func(c *cart.Cart) error {
			return c.Add(item)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartUpdateQuantity sets a line's quantity; zero or less removes the line.
func CartUpdateQuantity(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := mutateCart(r.Context(), store, sessionID, func(c *cart.Cart) error {
			c.UpdateQuantity(itemID, *payload.Quantity)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemove deletes a line. Removing an absent id is a no-op, not an error.
func CartRemove(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemId")
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		view, err := mutateCart(r.Context(), store, sessionID, func(c *cart.Cart) error {
			c.Remove(itemID)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the session cart.
func CartClear(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := mutateCart(r.Context(), store, sessionID, func(c *cart.Cart) error {
			c.Clear()
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func mutateCart(ctx context.Context, store cart.Store, sessionID string, mutate func(*cart.Cart) error) (*cartView, error) {
	c, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := mutate(c); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	view := newCartView(c.SnapshotView())
	return &view, nil
}

func newCartView(snap cart.Snapshot) cartView {
	items := make([]cartItemView, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, cartItemView{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.InexactFloat64(),
			Image:    item.Image,
			Quantity: item.Quantity,
		})
	}
	return cartView{
		Items:      items,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice.InexactFloat64(),
	}
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session missing")
	}
	return sessionID, nil
}
