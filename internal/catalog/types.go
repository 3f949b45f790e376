package catalog

import "time"

// Product is the catalog record served by the upstream API. Stock fields are
// only present when the row was sourced from the inventory endpoint; a nil
// stock with InventoryUnavailable set means the stock subsystem could not be
// reached, which is distinct from zero stock.
type Product struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Image                string  `json:"image"`
	Price                float64 `json:"price"`
	Description          *string `json:"description,omitempty"`
	OnlineStock          *int    `json:"onlineStock"`
	InStoreStock         *int    `json:"inStoreStock"`
	LowStockThreshold    *int    `json:"lowStockThreshold,omitempty"`
	LastUpdated          *string `json:"lastUpdated,omitempty"`
	OnlineInStock        bool    `json:"onlineInStock"`
	InStoreInStock       bool    `json:"inStoreInStock"`
	InventoryUnavailable bool    `json:"inventoryUnavailable,omitempty"`
}

// InventoryItem is the raw inventory row upstream.
type InventoryItem struct {
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
}

// InventoryEvent is an immutable stock change log record. Display only.
type InventoryEvent struct {
	ProductID      string    `json:"product_id"`
	EventType      string    `json:"event_type"`
	QuantityChange int       `json:"quantity_change"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

// PurchaseRequest is the payload POSTed to /purchase. Phone and card arrive
// already stripped of display formatting.
type PurchaseRequest struct {
	CustomerName   string         `json:"customerName"`
	CustomerEmail  string         `json:"customerEmail"`
	CustomerPhone  string         `json:"customerPhone"`
	CreditCard     string         `json:"creditCard"`
	BillingAddress string         `json:"billingAddress"`
	Items          []PurchaseItem `json:"items"`
}

type PurchaseItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// PurchaseResponse is the upstream acknowledgement of a submitted order.
type PurchaseResponse struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}

// Order is the post-checkout record fetched for the confirmation view.
type Order struct {
	OrderID        string         `json:"orderId"`
	CustomerName   string         `json:"customerName"`
	CustomerEmail  string         `json:"customerEmail"`
	BillingAddress string         `json:"billingAddress"`
	TotalAmount    float64        `json:"totalAmount"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"createdAt"`
	Items          []PurchaseItem `json:"items"`
}
