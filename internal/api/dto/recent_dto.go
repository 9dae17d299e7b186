package dto

// RecentOrderRequest payload for POST /api/recent-orders.
type RecentOrderRequest struct {
	ID int64 `json:"id"`
}

// RecentOrdersResponse lists remembered order ids, most recent first.
type RecentOrdersResponse struct {
	IDs []int64 `json:"ids"`
}
