package handlers

import (
	"delivery-route-service/internal/api/dto"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/services"
	"net/http"
)

// DeliveryHandler serves route computation and driver location endpoints.
type DeliveryHandler struct {
	Routes    *services.RouteService
	Locations *services.LocationService
}

// Route computes a fresh route. Without orderIds every deliverable order is routed.
func (h *DeliveryHandler) Route(w http.ResponseWriter, r *http.Request) {
	ids := services.ParseOrderIDs(r.URL.Query().Get("orderIds"))

	planned, err := h.Routes.Plan(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, "route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(planned))
}

// RouteGeoJSON renders the same route as a GeoJSON FeatureCollection.
func (h *DeliveryHandler) RouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	ids := services.ParseOrderIDs(r.URL.Query().Get("orderIds"))

	planned, err := h.Routes.Plan(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, "route geojson", err)
		return
	}

	body, err := routeFeatureCollection(planned).MarshalJSON()
	if err != nil {
		writeServiceError(w, r, "route geojson", err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// RemoveStop drops one order from the explicit route in ?orderIds= and
// returns the recomputed route. The last stop cannot be removed.
func (h *DeliveryHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	orderID, ok := services.ParseOrderID(r.PathValue("orderId"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	current := services.ParseOrderIDs(r.URL.Query().Get("orderIds"))
	if len(current) == 0 {
		writeError(w, r, http.StatusBadRequest, "orderIds is required")
		return
	}

	next, err := services.RemoveStop(current, orderID)
	if err != nil {
		writeServiceError(w, r, "remove stop", err)
		return
	}

	planned, err := h.Routes.Plan(r.Context(), next)
	if err != nil {
		writeServiceError(w, r, "remove stop", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RemoveStopResponse{
		OrderIDs:      next,
		RouteResponse: toRouteResponse(planned),
	})
}

// UpdateLocation records a driver ping.
func (h *DeliveryHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req dto.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loc, err := h.Locations.Ping(r.Context(), domain.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude})
	if err != nil {
		writeServiceError(w, r, "update location", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toHubResponse(loc))
}

// Location returns the origin the next route would start from.
func (h *DeliveryHandler) Location(w http.ResponseWriter, r *http.Request) {
	loc, err := h.Locations.Current(r.Context())
	if err != nil {
		writeServiceError(w, r, "location", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toHubResponse(loc))
}

func toHubResponse(loc domain.DriverLocation) dto.HubResponse {
	res := dto.HubResponse{
		Latitude:  loc.Coordinate.Latitude,
		Longitude: loc.Coordinate.Longitude,
		IsDefault: loc.IsDefault,
	}
	if !loc.IsDefault {
		updated := loc.UpdatedAt
		res.DriverID = loc.DriverID
		res.UpdatedAt = &updated
	}
	return res
}

func toRouteResponse(p *services.PlannedRoute) dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(p.Route.Stops))
	for _, s := range p.Route.Stops {
		stops = append(stops, dto.StopResponse{
			OrderID:     s.OrderID,
			OrderStatus: string(s.OrderStatus),
			TotalAmount: s.TotalAmount,
			Customer:    dto.StopCustomer{Name: s.CustomerName},
			Address: dto.StopAddress{
				AddressLine1: s.AddressLine,
				City:         s.City,
				Latitude:     s.Coordinate.Latitude,
				Longitude:    s.Coordinate.Longitude,
			},
		})
	}

	return dto.RouteResponse{
		Hub:   toHubResponse(p.Origin),
		Route: stops,
		Stats: dto.RouteStatsResponse{
			TotalDistance: services.FormatDistance(p.Result.TotalDistanceKm),
			EstimatedTime: p.Route.Stats.EstimatedMinutes,
			StopCount:     p.Route.Stats.StopCount,
		},
		SkippedOrders: p.SkippedOrders,
	}
}
