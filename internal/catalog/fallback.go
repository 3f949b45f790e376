package catalog

import (
	"context"
	"time"
)

// ListProductsWithStock is the ordered two-attempt chain used by the catalog
// views: inventory first, plain products second. It is deliberately not a
// retry policy; each source is tried exactly once with no backoff. When only
// the plain catalog is reachable every row is marked InventoryUnavailable so
// views can tell "stock system down" apart from "out of stock".
func (c *Client) ListProductsWithStock(ctx context.Context) ([]Product, error) {
	items, err := c.ListInventory(ctx)
	if err == nil {
		products := make([]Product, 0, len(items))
		for _, item := range items {
			products = append(products, item.toProduct())
		}
		return products, nil
	}

	if c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "fallback", "products"), "inventory fetch failed, serving plain catalog")
	}

	plain, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plain {
		plain[i].OnlineStock = nil
		plain[i].InStoreStock = nil
		plain[i].OnlineInStock = false
		plain[i].InStoreInStock = false
		plain[i].InventoryUnavailable = true
	}
	return plain, nil
}

// GetProductWithStock enriches a product detail with its inventory row when
// the stock subsystem is reachable, and marks it unavailable otherwise.
func (c *Client) GetProductWithStock(ctx context.Context, id string) (*Product, error) {
	product, err := c.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	items, invErr := c.ListInventory(ctx)
	if invErr != nil {
		product.OnlineStock = nil
		product.InStoreStock = nil
		product.OnlineInStock = false
		product.InStoreInStock = false
		product.InventoryUnavailable = true
		return product, nil
	}

	for _, item := range items {
		if item.ID == product.ID {
			enriched := item.toProduct()
			enriched.Description = product.Description
			return &enriched, nil
		}
	}

	// Listed in the catalog but absent from inventory: treat as out of stock.
	zero := 0
	product.OnlineStock = &zero
	product.InStoreStock = &zero
	product.OnlineInStock = false
	product.InStoreInStock = false
	return product, nil
}

func (i InventoryItem) toProduct() Product {
	onlineStock := i.OnlineStock
	inStoreStock := i.InStoreStock
	threshold := i.LowStockThreshold
	updated := i.LastUpdated.Format(time.RFC3339)
	return Product{
		ID:                i.ID,
		Name:              i.Name,
		Image:             i.Image,
		Price:             i.Price,
		OnlineStock:       &onlineStock,
		InStoreStock:      &inStoreStock,
		LowStockThreshold: &threshold,
		LastUpdated:       &updated,
		OnlineInStock:     i.OnlineInStock,
		InStoreInStock:    i.InStoreInStock,
	}
}
