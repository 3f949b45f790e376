package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/invisimart/storefront-web/internal/cart"
	"github.com/invisimart/storefront-web/internal/catalog"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

type purchaseSubmitter interface {
	SubmitPurchase(ctx context.Context, purchase catalog.PurchaseRequest) (*catalog.PurchaseResponse, error)
}

// SubmitInput carries the checkout form fields. Phone and card may arrive
// with display formatting; the service strips it before submission.
type SubmitInput struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	CreditCard     string
	BillingAddress string
}

// Receipt is what the confirmation view needs after a successful submission.
type Receipt struct {
	OrderID   string
	Status    string
	Message   string
	Total     float64
	Timestamp string
}

// Service runs the one-shot checkout procedure: load the session cart, strip
// formatting, submit upstream, clear the cart on success. A per-session
// in-flight gate rejects a second submit while one is outstanding.
type Service struct {
	carts cart.Store
	api   purchaseSubmitter
	logg  *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(carts cart.Store, api purchaseSubmitter, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, errors.New("cart store required")
	}
	if api == nil {
		return nil, errors.New("purchase submitter required")
	}
	return &Service{
		carts:    carts,
		api:      api,
		logg:     logg,
		inflight: make(map[string]struct{}),
	}, nil
}

func (s *Service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*Receipt, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if !s.acquire(sessionID) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	defer s.release(sessionID)

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	purchase := catalog.PurchaseRequest{
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:  DigitsOnly(input.CustomerPhone),
		CreditCard:     StripSpaces(input.CreditCard),
		BillingAddress: strings.TrimSpace(input.BillingAddress),
		Items:          toPurchaseItems(items),
	}

	result, err := s.api.SubmitPurchase(ctx, purchase)
	if err != nil {
		// Cart state stays untouched so the user can retry.
		return nil, relayError(err)
	}

	c.Clear()
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		// The order went through; a stale cart is the lesser failure.
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "order_id", result.OrderID), "clear cart after purchase", err)
		}
	}

	return &Receipt{
		OrderID:   result.OrderID,
		Status:    result.Status,
		Message:   result.Message,
		Total:     result.Total,
		Timestamp: result.Timestamp,
	}, nil
}

func validateInput(input SubmitInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customerName"] = "is required"
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		details["customerEmail"] = "is required"
	}
	if DigitsOnly(input.CustomerPhone) == "" {
		details["customerPhone"] = "is required"
	}
	if card := DigitsOnly(input.CreditCard); card == "" {
		details["creditCard"] = "is required"
	} else if len(card) > maxCardDigits {
		details["creditCard"] = "must be at most 16 digits"
	}
	if strings.TrimSpace(input.BillingAddress) == "" {
		details["billingAddress"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// relayError maps an upstream rejection to a typed error carrying the
// server's text so the view can show it verbatim.
func relayError(err error) error {
	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		msg := upstream.Body
		if msg == "" {
			msg = "failed to process purchase"
		}
		switch {
		case upstream.StatusCode == http.StatusNotFound:
			return pkgerrors.New(pkgerrors.CodeNotFound, msg)
		case upstream.StatusCode >= 400 && upstream.StatusCode < 500:
			return pkgerrors.New(pkgerrors.CodeValidation, msg)
		default:
			return pkgerrors.New(pkgerrors.CodeDependency, msg)
		}
	}
	return err
}

func toPurchaseItems(items []cart.Item) []catalog.PurchaseItem {
	out := make([]catalog.PurchaseItem, 0, len(items))
	for _, item := range items {
		out = append(out, catalog.PurchaseItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price.InexactFloat64(),
		})
	}
	return out
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}
