package handlers

import (
	"delivery-route-service/internal/services"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// routeFeatureCollection renders the hub, each stop in visiting order, and
// the straight-line path between them.
func routeFeatureCollection(p *services.PlannedRoute) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	hub := orb.Point(p.Route.Hub.LonLat())
	hubFeature := geojson.NewFeature(hub)
	hubFeature.Properties["kind"] = "hub"
	hubFeature.Properties["is_default"] = p.Origin.IsDefault
	fc.Append(hubFeature)

	line := orb.LineString{hub}
	for i, s := range p.Route.Stops {
		pt := orb.Point(s.Coordinate.LonLat())
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties["kind"] = "stop"
		f.Properties["sequence"] = i + 1
		f.Properties["order_id"] = s.OrderID
		f.Properties["order_status"] = string(s.OrderStatus)
		f.Properties["customer_name"] = s.CustomerName
		f.Properties["leg_km"] = p.Result.Legs[i]
		fc.Append(f)
	}

	if len(line) > 1 {
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		f.Properties["totalDistance"] = services.FormatDistance(p.Result.TotalDistanceKm)
		f.Properties["estimatedTime"] = p.Route.Stats.EstimatedMinutes
		f.Properties["stopCount"] = p.Route.Stats.StopCount
		fc.Append(f)
	}

	return fc
}
