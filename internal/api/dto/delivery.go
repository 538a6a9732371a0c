package dto

import "time"

type HubResponse struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	DriverID  int        `json:"driver_id,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	IsDefault bool       `json:"is_default"`
}

type StopCustomer struct {
	Name string `json:"name"`
}

type StopAddress struct {
	AddressLine1 string  `json:"address_line1"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type StopResponse struct {
	OrderID     int          `json:"order_id"`
	OrderStatus string       `json:"order_status"`
	TotalAmount float64      `json:"total_amount"`
	Customer    StopCustomer `json:"customers"`
	Address     StopAddress  `json:"addresses"`
}

// RouteStatsResponse carries the distance as a 2-decimal string.
type RouteStatsResponse struct {
	TotalDistance string `json:"totalDistance"`
	EstimatedTime int    `json:"estimatedTime"`
	StopCount     int    `json:"stopCount"`
}

type RouteResponse struct {
	Hub           HubResponse        `json:"hub"`
	Route         []StopResponse     `json:"route"`
	Stats         RouteStatsResponse `json:"stats"`
	SkippedOrders []int              `json:"skippedOrders,omitempty"`
}

// RemoveStopResponse is the recomputed route for the remaining explicit subset.
type RemoveStopResponse struct {
	OrderIDs []int `json:"orderIds"`
	RouteResponse
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}
