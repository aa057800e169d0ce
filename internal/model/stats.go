package model

import "sort"

// CollectionStats aggregates a result collection for reporting: geographic
// spread and how completely the optional fields were populated.
type CollectionStats struct {
	// Total is the number of listings in the collection.
	Total int `json:"total"`

	// ByProvince counts listings per breadcrumb province.
	ByProvince map[string]int `json:"by_province,omitempty"`

	// ByTown counts listings per breadcrumb town.
	ByTown map[string]int `json:"by_town,omitempty"`

	// WithPrice counts listings whose price field was extracted.
	WithPrice int `json:"with_price"`

	// WithSize counts listings whose size field was extracted.
	WithSize int `json:"with_size"`

	// WithImage counts listings with a primary image URL.
	WithImage int `json:"with_image"`

	// WithFeatures counts listings that had at least one feature row,
	// key:value or free-text.
	WithFeatures int `json:"with_features"`

	// WithAddress counts listings with an address block.
	WithAddress int `json:"with_address"`
}

// ComputeStats builds CollectionStats from a collection.
func ComputeStats(listings []Listing) CollectionStats {
	stats := CollectionStats{
		Total:      len(listings),
		ByProvince: make(map[string]int),
		ByTown:     make(map[string]int),
	}
	for i := range listings {
		l := &listings[i]
		stats.ByProvince[l.Province]++
		stats.ByTown[l.Town]++
		if present(l.Price) {
			stats.WithPrice++
		}
		if present(l.Size) {
			stats.WithSize++
		}
		if present(l.ImageURL) {
			stats.WithImage++
		}
		if len(l.Features) > 0 || len(l.FeatureList) > 0 {
			stats.WithFeatures++
		}
		if l.Address != "" && l.Address != MissingAddress {
			stats.WithAddress++
		}
	}
	return stats
}

// present reports whether a field holds extracted content rather than a
// placeholder.
func present(v string) bool {
	return v != "" && v != MissingValue
}

// SortedKeys returns the keys of a count map in descending count order,
// ties broken alphabetically. Used by the report writers for stable tables.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
