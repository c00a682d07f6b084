package zones

// UnknownRestaurant keys zones whose restaurant id attribute is empty
// or absent.
const UnknownRestaurant = "unknown"

// ZoneRef is one zone's identity inside a restaurant group.
type ZoneRef struct {
	Name       string `json:"name"`
	InternalID string `json:"internal_id"`
	ZoneID     int    `json:"zone_id"`
}

// RestaurantGroup collects the zones through which one restaurant
// covers a point. A group with several zones means the restaurant
// delivers there via overlapping coverage.
type RestaurantGroup struct {
	RestaurantID string    `json:"restaurant_id"`
	Partner      string    `json:"partner"`
	Zones        []ZoneRef `json:"zones"`
}

// GroupByRestaurant groups zones by their restaurant id attribute.
// Group order is first-seen order, the partner of the first zone wins,
// and every zone appends to its group's list in input order.
func GroupByRestaurant(zs []*Record, cols Columns) []RestaurantGroup {
	byID := make(map[string]int)
	groups := make([]RestaurantGroup, 0, len(zs))

	for _, rec := range zs {
		id := rec.Attrs.Text(cols.RestaurantID)
		if id == "" {
			id = UnknownRestaurant
		}

		idx, ok := byID[id]
		if !ok {
			idx = len(groups)
			byID[id] = idx
			groups = append(groups, RestaurantGroup{
				RestaurantID: id,
				Partner:      rec.Attrs.Text(cols.Partner),
			})
		}

		groups[idx].Zones = append(groups[idx].Zones, ZoneRef{
			Name:       rec.Attrs.Text(cols.ZoneName),
			InternalID: rec.Attrs.Text(cols.InternalID),
			ZoneID:     rec.ID,
		})
	}

	return groups
}

// RestaurantsForPoint groups the zones covering a point by restaurant.
func (s *Store) RestaurantsForPoint(lat, lon float64) ([]RestaurantGroup, error) {
	zs, err := s.PointInZones(lat, lon)
	if err != nil {
		return nil, err
	}

	return GroupByRestaurant(zs, s.cols), nil
}
