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

type productLister interface {
	ListProductsWithStock(ctx context.Context) ([]catalog.Product, error)
}

type productGetter interface {
	GetProductWithStock(ctx context.Context, id string) (*catalog.Product, error)
}

// ProductList serves the storefront listing: inventory-backed rows when the
// stock system is up, the plain catalog marked inventoryUnavailable when not.
func ProductList(svc productLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProductsWithStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail serves one product for the detail view. Unknown ids surface
// as NOT_FOUND so the client can render its not-found view.
func ProductDetail(svc productGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productId")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		product, err := svc.GetProductWithStock(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
