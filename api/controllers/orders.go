package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/invisimart/storefront-web/api/responses"
	"github.com/invisimart/storefront-web/internal/catalog"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

type orderGetter interface {
	GetOrder(ctx context.Context, orderID string) (*catalog.Order, error)
}

// OrderDetail serves the confirmation view. Unknown order ids surface as
// NOT_FOUND so the client shows its not-found view with a way back to the
// catalog rather than crashing.
func OrderDetail(svc orderGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderId")
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}
		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
