// Package filter provides record and cluster filtering for cluster tables
package filter

import "github.com/ChrisMcGann/clusterqc/pkg/core"

// Config holds filtering configuration
type Config struct {
	Charges        []int // Keep only these precursor charges (nil = all)
	MinClusterSize int   // Demote clusters smaller than this to noise (0 = no limit)
	MaxClusterSize int   // Demote clusters of this size or larger to noise (0 = no limit)
}

// ByCharge returns a new table holding only the records whose precursor
// charge is in charges. A nil charges slice keeps every record; an empty
// non-nil slice keeps none. The input table is not modified.
func ByCharge(table core.Table, charges []int) core.Table {
	if charges == nil {
		return table.Clone()
	}

	allowed := make(map[int]struct{}, len(charges))
	for _, c := range charges {
		allowed[c] = struct{}{}
	}

	filtered := make(core.Table, 0, len(table))
	for _, rec := range table {
		if _, ok := allowed[rec.PrecursorCharge]; ok {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// BySize demotes to noise every record whose cluster size falls outside
// [minSize, maxSize). Sizes are counted once before either bound is applied,
// so the two bounds never see each other's demotions. A zero bound is
// disabled. Records already labelled noise are counted like any other
// label. Returns the number of demoted records.
func BySize(table core.Table, minSize, maxSize int) int {
	if minSize <= 0 && maxSize <= 0 {
		return 0
	}

	sizes := table.ClusterSizes()

	demoted := 0
	if minSize > 0 {
		demoted += demote(table, func(label int) bool { return sizes[label] < minSize })
	}
	if maxSize > 0 {
		demoted += demote(table, func(label int) bool { return sizes[label] >= maxSize })
	}
	return demoted
}

// demote relabels as noise the records whose cluster matches, skipping
// records that are already noise.
func demote(table core.Table, match func(label int) bool) int {
	n := 0
	for i := range table {
		if table[i].Cluster != core.Noise && match(table[i].Cluster) {
			table[i].Cluster = core.Noise
			n++
		}
	}
	return n
}
