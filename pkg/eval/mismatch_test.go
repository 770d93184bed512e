package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

func TestCountMajorityMismatch(t *testing.T) {
	tests := []struct {
		name string
		seqs []string
		want int
	}{
		{"clean cluster", []string{"A", "A", "A"}, 0},
		{"one outlier", []string{"A", "A", "B"}, 1},
		{"all different", []string{"A", "B", "C"}, 2},
		{"all unknown", []string{"", "", ""}, 0},
		{"single known", []string{"", "A", ""}, 0},
		{"unknowns ignored", []string{"A", "", "B", "A", ""}, 1},
		{"empty", nil, 0},
		{"tie", []string{"A", "B", "B", "A"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CountMajorityMismatch(tt.seqs))
		})
	}
}

func TestMajorityTieGoesToFirstSeen(t *testing.T) {
	best, top, known := majority([]string{"", "B", "A", "A", "B"})

	require.Equal(t, "B", best)
	require.Equal(t, 2, top)
	require.Equal(t, 4, known)
}

func TestClusterStatsSkipsNoise(t *testing.T) {
	table := core.Table{
		{Cluster: 1, Sequence: "A"},
		{Cluster: core.Noise, Sequence: "B"},
		{Cluster: 0},
		{Cluster: 1, Sequence: "C"},
		{Cluster: 1, Sequence: "A"},
	}

	stats, err := clusterStats(context.Background(), table, 2)

	require.NoError(t, err)
	require.Equal(t, []ClusterStat{
		{Label: 0, Size: 1},
		{Label: 1, Size: 3, Identified: 3, Mismatches: 1, Majority: "A"},
	}, stats)
}
