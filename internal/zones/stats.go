package zones

import "sort"

// cityDistributionTop caps how many cities the stats report.
const cityDistributionTop = 10

// DistributionEntry is one value bucket of an attribute distribution.
type DistributionEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes the loaded zone set.
type Stats struct {
	TotalZones          int                 `json:"total_zones"`
	DistinctPartners    int                 `json:"distinct_partners"`
	DistinctRestaurants int                 `json:"distinct_restaurants"`
	DistinctCities      int                 `json:"distinct_cities"`
	PartnerDistribution []DistributionEntry `json:"partner_distribution"`
	CityDistribution    []DistributionEntry `json:"city_distribution"`
}

// Stats reports zone counts and attribute distributions. The partner
// distribution is complete, the city distribution keeps the top
// entries only. An empty store reports zeros.
func (s *Store) Stats() Stats {
	partners := s.distribution(s.cols.Partner)
	restaurants := s.distribution(s.cols.RestaurantID)
	cities := s.distribution(s.cols.City)

	st := Stats{
		TotalZones:          len(s.records),
		DistinctPartners:    len(partners),
		DistinctRestaurants: len(restaurants),
		DistinctCities:      len(cities),
		PartnerDistribution: partners,
	}

	if len(cities) > cityDistributionTop {
		cities = cities[:cityDistributionTop]
	}
	st.CityDistribution = cities

	return st
}

// distribution counts non-empty values of one attribute column, most
// frequent first, name ascending on ties.
func (s *Store) distribution(column string) []DistributionEntry {
	counts := make(map[string]int)
	for _, rec := range s.records {
		if v := rec.Attrs.Text(column); v != "" {
			counts[v]++
		}
	}

	entries := make([]DistributionEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, DistributionEntry{Name: name, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}
