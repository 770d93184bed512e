package eval

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

// ClusterStat describes one retained cluster after evaluation.
type ClusterStat struct {
	Label      int
	Size       int    // Records in the cluster
	Identified int    // Records with a known identity
	Mismatches int    // Identified records disagreeing with the majority
	Majority   string // Most common identity; empty if none is known
}

// CountMajorityMismatch returns how many known identities in sequences
// differ from the most common known identity. Empty strings are unknown and
// ignored. With at most one known identity nothing can mismatch.
func CountMajorityMismatch(sequences []string) int {
	_, top, known := majority(sequences)
	if known <= 1 {
		return 0
	}
	return known - top
}

// majority returns the most common non-empty value, its count and the number
// of non-empty values. Ties go to the value seen first.
func majority(sequences []string) (best string, top, known int) {
	counts := make(map[string]int)
	var order []string
	for _, seq := range sequences {
		if seq == "" {
			continue
		}
		known++
		if counts[seq] == 0 {
			order = append(order, seq)
		}
		counts[seq]++
	}
	for _, seq := range order {
		if counts[seq] > top {
			best, top = seq, counts[seq]
		}
	}
	return best, top, known
}

// clusterStats groups the non-noise records of table by label and computes
// each cluster's statistics concurrently on at most workers goroutines.
// Stats are returned ordered by label.
func clusterStats(ctx context.Context, table core.Table, workers int) ([]ClusterStat, error) {
	groups := make(map[int][]string)
	for _, rec := range table {
		if rec.IsNoise() {
			continue
		}
		groups[rec.Cluster] = append(groups[rec.Cluster], rec.Sequence)
	}

	labels := make([]int, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	stats := make([]ClusterStat, len(labels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seqs := groups[label]
			best, _, known := majority(seqs)
			stats[i] = ClusterStat{
				Label:      label,
				Size:       len(seqs),
				Identified: known,
				Mismatches: CountMajorityMismatch(seqs),
				Majority:   best,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
