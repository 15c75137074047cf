package http

import "time"

// ErrorResponse is the uniform error payload for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the payload for registering a takeout order.
type NewOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	ShopLocation    NewOrderShopDetail `json:"shopLocation"`
	PrepTimeMinutes int                `json:"prepTimeMinutes"`
}

// NewOrderShopDetail carries the stationary shop destination.
type NewOrderShopDetail struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Address   string  `json:"address,omitempty"`
}

// CreatedOrderResponse returns the server-assigned order id.
type CreatedOrderResponse struct {
	ID string `json:"id"`
}

// LocationUpdateRequest is one live position sample. Speed is accepted but
// unused so existing driver apps keep working unchanged. The receipt time
// is stamped by the server; a client-supplied timestamp could park the
// throttle claim in the future and freeze the order's tracking.
type LocationUpdateRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Speed     *float64 `json:"speed,omitempty"`
}

// LocationResponse renders a coordinate pair.
type LocationResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// OrderSummaryResponse is one entry in the active orders listing.
type OrderSummaryResponse struct {
	ID                string           `json:"id"`
	CustomerName      string           `json:"customerName"`
	ShopLocation      LocationResponse `json:"shopLocation"`
	PrepTimeMinutes   int              `json:"prepTimeMinutes"`
	Status            string           `json:"status"`
	LastProviderCheck *time.Time       `json:"lastProviderCheck,omitempty"`
}

// OrderResponse is the full read model of one order.
type OrderResponse struct {
	ID                string           `json:"id"`
	CustomerName      string           `json:"customerName"`
	ShopLocation      LocationResponse `json:"shopLocation"`
	ShopAddress       string           `json:"shopAddress,omitempty"`
	PrepTimeMinutes   int              `json:"prepTimeMinutes"`
	Status            string           `json:"status"`
	LastProviderCheck *time.Time       `json:"lastProviderCheck,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}
