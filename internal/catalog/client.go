package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/invisimart/storefront-web/pkg/config"
	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	"github.com/invisimart/storefront-web/pkg/logger"
)

// Client talks to the upstream storefront API on behalf of the views. It is
// the only component that knows the upstream host.
type Client struct {
	base         *url.URL
	http         *http.Client
	probeTimeout time.Duration
	logg         *logger.Logger
}

// UpstreamError carries a non-OK upstream response so callers can relay the
// server's error text to the user verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream url: %w", err)
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Client{
		base:         base,
		http:         &http.Client{Timeout: cfg.RequestTimeout},
		probeTimeout: probeTimeout,
		logg:         logg,
	}, nil
}

// BaseURL exposes the upstream root for the proxy relay.
func (c *Client) BaseURL() *url.URL {
	return c.base
}

// HTTPClient exposes the shared transport for the proxy relay.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// ListProducts fetches the plain catalog without stock fields.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product. Unknown ids map to NOT_FOUND.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListInventory fetches products with stock fields.
func (c *Client) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := c.getJSON(ctx, "/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListEvents fetches the full inventory change log. The upstream exposes no
// paging parameters, so the whole set comes back in one call.
func (c *Client) ListEvents(ctx context.Context) ([]InventoryEvent, error) {
	var events []InventoryEvent
	if err := c.getJSON(ctx, "/inventory/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetOrder fetches order details for the confirmation view.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var order Order
	if err := c.getJSON(ctx, "/purchase?orderId="+url.QueryEscape(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SubmitPurchase posts the order. A non-OK response surfaces as
// *UpstreamError so the checkout flow can relay the server's message.
func (c *Client) SubmitPurchase(ctx context.Context, purchase PurchaseRequest) (*PurchaseResponse, error) {
	payload, err := json.Marshal(purchase)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode purchase")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve("/purchase"), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build purchase request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit purchase")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read purchase response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result PurchaseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode purchase response")
	}
	return &result, nil
}

// Probe issues a bounded GET against the given path and reports reachability.
// Any response outside 2xx, and any transport error or timeout, is a failure.
func (c *Client) Probe(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path), nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// Ping satisfies the readiness check surface.
func (c *Client) Ping(ctx context.Context) error {
	return c.Probe(ctx, "/health")
}

func (c *Client) resolve(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return pkgerrors.New(pkgerrors.CodeDependency, "fetch "+path).
			WithDetails(map[string]any{"status": resp.StatusCode, "body": strings.TrimSpace(string(body))})
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+path)
	}
	return nil
}
