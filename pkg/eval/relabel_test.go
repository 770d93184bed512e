package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

func tableFromLabels(labels ...int) core.Table {
	t := make(core.Table, len(labels))
	for i, l := range labels {
		t[i].Cluster = l
	}
	return t
}

func clusterLabels(t core.Table) []int {
	out := make([]int, len(t))
	for i, r := range t {
		out[i] = r.Cluster
	}
	return out
}

func TestLabelMappingOrdersBySize(t *testing.T) {
	table := tableFromLabels(42, 7, 7, -1, 7, 42, 9, -1, -1, -1)

	mapping := LabelMapping(table)

	require.Equal(t, map[int]int{7: 0, 42: 1, 9: 2}, mapping)
}

func TestLabelMappingTiesKeepFirstAppearance(t *testing.T) {
	table := tableFromLabels(5, 3, 5, 3, 8)

	mapping := LabelMapping(table)

	require.Equal(t, map[int]int{5: 0, 3: 1, 8: 2}, mapping)
}

func TestRelabel(t *testing.T) {
	table := tableFromLabels(10, -1, 20, 20, 10, 20)

	n := Relabel(table)

	require.Equal(t, 2, n)
	require.Equal(t, []int{1, -1, 0, 0, 1, 0}, clusterLabels(table))
}

func TestRelabelAndSingletonsAreDense(t *testing.T) {
	tables := []core.Table{
		tableFromLabels(),
		tableFromLabels(-1, -1, -1),
		tableFromLabels(3, 3, 3),
		tableFromLabels(100, -1, 5, 5, -1, 100, 100, 7, -1, -1, -1),
	}

	for _, table := range tables {
		Relabel(table)
		AssignNoiseSingletons(table)

		seen := make(map[int]bool)
		for _, r := range table {
			require.GreaterOrEqual(t, r.Cluster, 0)
			seen[r.Cluster] = true
		}
		for l := 0; l < len(seen); l++ {
			require.True(t, seen[l], "label %d missing from %v", l, clusterLabels(table))
		}
	}
}

func TestAssignNoiseSingletons(t *testing.T) {
	// Two real clusters of sizes 3 and 2 plus five noise spectra.
	table := tableFromLabels(0, -1, 0, 1, -1, -1, 0, 1, -1, -1)

	n := AssignNoiseSingletons(table)

	require.Equal(t, 5, n)
	require.Equal(t, []int{0, 2, 0, 1, 3, 4, 0, 1, 5, 6}, clusterLabels(table))

	sizes := table.ClusterSizes()
	for l := 2; l <= 6; l++ {
		require.Equal(t, 1, sizes[l], "label %d", l)
	}
}

func TestAssignNoiseSingletonsAllNoise(t *testing.T) {
	table := tableFromLabels(-1, -1)

	AssignNoiseSingletons(table)

	require.Equal(t, []int{0, 1}, clusterLabels(table))
}
