package eval

import (
	"sort"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

// LabelMapping maps every non-noise cluster label in table to a dense,
// zero-based label. Larger clusters get smaller labels; clusters of equal
// size keep the order in which their labels first appear.
func LabelMapping(table core.Table) map[int]int {
	counts := make(map[int]int)
	var order []int
	for _, rec := range table {
		if _, seen := counts[rec.Cluster]; !seen {
			order = append(order, rec.Cluster)
		}
		counts[rec.Cluster]++
	}

	labels := order[:0]
	for _, label := range order {
		if label != core.Noise {
			labels = append(labels, label)
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return counts[labels[i]] > counts[labels[j]]
	})

	mapping := make(map[int]int, len(labels))
	for dense, label := range labels {
		mapping[label] = dense
	}
	return mapping
}

// Relabel rewrites the cluster labels of table in place using LabelMapping.
// Labels absent from the mapping, noise included, become core.Noise.
// Returns the number of dense labels.
func Relabel(table core.Table) int {
	mapping := LabelMapping(table)
	for i := range table {
		if dense, ok := mapping[table[i].Cluster]; ok {
			table[i].Cluster = dense
		} else {
			table[i].Cluster = core.Noise
		}
	}
	return len(mapping)
}

// AssignNoiseSingletons gives every noise record its own cluster. Labels
// start one past the largest label in table and follow row order.
// Returns the number of singletons created.
func AssignNoiseSingletons(table core.Table) int {
	next := 0
	for _, rec := range table {
		if rec.Cluster+1 > next {
			next = rec.Cluster + 1
		}
	}

	n := 0
	for i := range table {
		if table[i].Cluster == core.Noise {
			table[i].Cluster = next + n
			n++
		}
	}
	return n
}
