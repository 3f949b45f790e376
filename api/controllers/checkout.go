package controllers

import (
	"context"
	"net/http"

	"github.com/invisimart/storefront-web/api/responses"
	"github.com/invisimart/storefront-web/api/validators"
	checkoutsvc "github.com/invisimart/storefront-web/internal/checkout"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

type checkoutService interface {
	Submit(ctx context.Context, sessionID string, input checkoutsvc.SubmitInput) (*checkoutsvc.Receipt, error)
}

type checkoutRequest struct {
	CustomerName   string `json:"customerName" validate:"required"`
	CustomerEmail  string `json:"customerEmail" validate:"required,email"`
	CustomerPhone  string `json:"customerPhone" validate:"required"`
	CreditCard     string `json:"creditCard" validate:"required"`
	BillingAddress string `json:"billingAddress" validate:"required"`
}

type checkoutResponse struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	Message   string  `json:"message,omitempty"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Checkout submits the session cart as a purchase. On success the cart is
// cleared by the service; on failure the upstream's error text comes back and
// the cart is left intact so the user can retry.
func Checkout(svc checkoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), sessionID, checkoutsvc.SubmitInput{
			CustomerName:   payload.CustomerName,
			CustomerEmail:  payload.CustomerEmail,
			CustomerPhone:  payload.CustomerPhone,
			CreditCard:     payload.CreditCard,
			BillingAddress: payload.BillingAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{
			OrderID:   receipt.OrderID,
			Status:    receipt.Status,
			Message:   receipt.Message,
			Total:     receipt.Total,
			Timestamp: receipt.Timestamp,
		})
	}
}
