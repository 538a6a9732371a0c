package main

import (
	"context"
	"delivery-route-service/internal/api/dto"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/services"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// fetchRoute asks the route API for the current route.
func fetchRoute(ctx context.Context, client *http.Client, baseURL string, orderIDs []int) (*dto.RouteResponse, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/delivery/route")
	if err != nil {
		return nil, fmt.Errorf("fetch route: parse url: %w", err)
	}
	if len(orderIDs) > 0 {
		q := u.Query()
		q.Set("orderIds", services.FormatOrderIDs(orderIDs))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch route: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("fetch route: status %d: %s", resp.StatusCode, e.Error)
	}

	var route dto.RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return nil, fmt.Errorf("fetch route: decode: %w", err)
	}
	return &route, nil
}

func stopCoordinates(route *dto.RouteResponse) []domain.Coordinate {
	out := make([]domain.Coordinate, 0, len(route.Route))
	for _, s := range route.Route {
		out = append(out, domain.Coordinate{Latitude: s.Address.Latitude, Longitude: s.Address.Longitude})
	}
	return out
}
