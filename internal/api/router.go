package api

import (
	"delivery-route-service/internal/api/handlers"
	"delivery-route-service/internal/services"
	"net/http"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Routes     *services.RouteService
	Locations  *services.LocationService
	Status     *services.StatusService
	Settlement *services.SettlementService
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc Services) http.Handler {
	mux := http.NewServeMux()

	delivery := &handlers.DeliveryHandler{Routes: svc.Routes, Locations: svc.Locations}
	orders := &handlers.OrderHandler{Status: svc.Status, Settlement: svc.Settlement}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /delivery/route", delivery.Route)
	mux.HandleFunc("GET /delivery/route.geojson", delivery.RouteGeoJSON)
	mux.HandleFunc("DELETE /delivery/route/stops/{orderId}", delivery.RemoveStop)
	mux.HandleFunc("GET /delivery/location", delivery.Location)
	mux.HandleFunc("POST /delivery/location", delivery.UpdateLocation)

	mux.HandleFunc("PATCH /orders/{id}/status", orders.UpdateStatus)
	mux.HandleFunc("POST /orders/{id}/collect-cash", orders.CollectCash)
	mux.HandleFunc("POST /orders/settlement", orders.Settle)

	return requestIDMiddleware(loggingMiddleware(mux))
}
