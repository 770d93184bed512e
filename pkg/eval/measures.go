package eval

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

type labelPair struct {
	identity string
	cluster  int
}

// Homogeneity measures whether each cluster holds a single identity:
// 1 - H(identity|cluster)/H(identity), or 1 when H(identity) is zero.
// identities and clusters are parallel slices.
func Homogeneity(identities []string, clusters []int) float64 {
	h, _ := homogeneityCompleteness(identities, clusters)
	return h
}

// Completeness measures whether each identity is confined to one cluster:
// 1 - H(cluster|identity)/H(cluster), or 1 when H(cluster) is zero.
func Completeness(identities []string, clusters []int) float64 {
	_, c := homogeneityCompleteness(identities, clusters)
	return c
}

func homogeneityCompleteness(identities []string, clusters []int) (homogeneity, completeness float64) {
	n := len(identities)
	if n == 0 {
		return 1, 1
	}

	identityCounts := make(map[string]int)
	clusterCounts := make(map[int]int)
	joint := make(map[labelPair]int)
	for i, id := range identities {
		identityCounts[id]++
		clusterCounts[clusters[i]]++
		joint[labelPair{id, clusters[i]}]++
	}

	hIdentity := entropy(identityCounts, n)
	hCluster := entropy(clusterCounts, n)
	hJoint := entropy(joint, n)

	// I(identity; cluster) = H(identity) + H(cluster) - H(identity, cluster)
	mi := hIdentity + hCluster - hJoint
	if mi < 0 {
		mi = 0
	}

	homogeneity, completeness = 1, 1
	if hIdentity != 0 {
		homogeneity = mi / hIdentity
	}
	if hCluster != 0 {
		completeness = mi / hCluster
	}
	return homogeneity, completeness
}

// entropy returns the Shannon entropy (nats) of the empirical distribution
// given by counts over n observations. Counts are sorted first so the result
// does not depend on map iteration order.
func entropy[K comparable](counts map[K]int, n int) float64 {
	sorted := make([]int, 0, len(counts))
	for _, c := range counts {
		sorted = append(sorted, c)
	}
	sort.Ints(sorted)

	p := make([]float64, len(sorted))
	for i, c := range sorted {
		p[i] = float64(c) / float64(n)
	}
	return stat.Entropy(p)
}
