package core

import "sort"

// Table is an ordered collection of spectrum records, indexed by row.
type Table []Record

// Clone returns a copy of the table that can be mutated without affecting t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// ClusterSizes counts the records per cluster label, noise included.
func (t Table) ClusterSizes() map[int]int {
	sizes := make(map[int]int)
	for _, r := range t {
		sizes[r.Cluster]++
	}
	return sizes
}

// ChargeCount is the number of records observed at one precursor charge.
type ChargeCount struct {
	Charge int
	Count  int
}

// Summary holds descriptive statistics about a cluster table.
type Summary struct {
	Rows           int
	Identified     int
	Noise          int
	Clusters       int // Distinct non-noise labels
	LargestCluster int
	Singletons     int // Non-noise clusters of size one
	Charges        []ChargeCount
}

// Summarize computes descriptive statistics over the table as given, without
// relabeling or filtering.
func (t Table) Summarize() Summary {
	s := Summary{Rows: len(t)}

	charges := make(map[int]int)
	for _, r := range t {
		charges[r.PrecursorCharge]++
		if r.Identified() {
			s.Identified++
		}
		if r.IsNoise() {
			s.Noise++
		}
	}

	for label, size := range t.ClusterSizes() {
		if label == Noise {
			continue
		}
		s.Clusters++
		if size > s.LargestCluster {
			s.LargestCluster = size
		}
		if size == 1 {
			s.Singletons++
		}
	}

	for charge, count := range charges {
		s.Charges = append(s.Charges, ChargeCount{Charge: charge, Count: count})
	}
	sort.Slice(s.Charges, func(i, j int) bool {
		return s.Charges[i].Charge < s.Charges[j].Charge
	})

	return s
}
