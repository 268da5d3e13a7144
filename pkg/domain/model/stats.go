package model

// Bucket is one group of an aggregation
type Bucket struct {
	Label string
	Count int
}

// RiskStats counts risks by level and by category.
// Buckets appear in the order their label was first seen.
type RiskStats struct {
	Total      int
	ByLevel    []Bucket
	ByCategory []Bucket
}

// NewRiskStats aggregates the given risks
func NewRiskStats(risks []*Risk) *RiskStats {
	return &RiskStats{
		Total: len(risks),
		ByLevel: countBy(risks, func(r *Risk) string {
			return r.Level.String()
		}),
		ByCategory: countBy(risks, func(r *Risk) string {
			return r.Category.Label()
		}),
	}
}

func countBy(risks []*Risk, key func(*Risk) string) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, r := range risks {
		k := key(r)
		if i, ok := index[k]; ok {
			buckets[i].Count++
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, Bucket{Label: k, Count: 1})
	}
	return buckets
}
