// Package eval scores a clustering of spectra against their peptide
// identifications.
//
// Evaluation runs on a private copy of the input table in four stages:
// charge filtering, dense relabeling, turning noise into singleton clusters
// and size filtering. The resulting labels feed three measures: the
// proportion of identified spectra that disagree with their cluster's
// majority identity, homogeneity and completeness.
//
// No input validation is performed. Empty inputs or inputs without
// identified, clustered spectra yield NaN proportions, which callers must
// check for.
package eval

import (
	"context"
	"runtime"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
	"github.com/ChrisMcGann/clusterqc/pkg/filter"
	"github.com/ChrisMcGann/clusterqc/pkg/logger"
)

// Params selects the spectra and clusters that are evaluated.
type Params struct {
	filter.Config
	Identity core.IdentityMode // How identities are compared (default peptidoform)
}

// Result holds the evaluation statistics.
type Result struct {
	NumClustered           int
	NumNoise               int
	PropClustered          float64
	PropClusteredIncorrect float64
	Homogeneity            float64
	Completeness           float64

	// Clusters lists every non-noise cluster after filtering, by label.
	Clusters []ClusterStat
}

// Values returns the six statistics in their fixed order: clustered count,
// noise count, proportion clustered, proportion incorrectly clustered,
// homogeneity and completeness.
func (r Result) Values() [6]float64 {
	return [6]float64{
		float64(r.NumClustered),
		float64(r.NumNoise),
		r.PropClustered,
		r.PropClusteredIncorrect,
		r.Homogeneity,
		r.Completeness,
	}
}

// Evaluator computes cluster evaluation statistics.
type Evaluator struct {
	workers int
	log     *logger.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWorkers bounds the goroutines used for per-cluster statistics.
// Values below one select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		workers: runtime.GOMAXPROCS(0),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores the clustering in table. The table is not modified. An
// error is returned only if ctx is cancelled.
func (e *Evaluator) Evaluate(ctx context.Context, table core.Table, params Params) (Result, error) {
	working := filter.ByCharge(table, params.Charges)
	e.log.Debug("charge filter applied", "rows", len(working), "input_rows", len(table))

	for i := range working {
		working[i].Sequence = params.Identity.Normalize(working[i].Sequence)
	}

	numLabels := Relabel(working)
	singletons := AssignNoiseSingletons(working)
	demoted := filter.BySize(working, params.MinClusterSize, params.MaxClusterSize)
	e.log.Debug("clusters relabeled",
		"clusters", numLabels,
		"noise_singletons", singletons,
		"size_filtered", demoted)

	stats, err := clusterStats(ctx, working, e.workers)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.Clusters = stats

	var (
		allIDs, clusteredIDs       []string
		allLabels, clusteredLabels []int
		mismatches                 int
	)
	for _, rec := range working {
		if rec.IsNoise() {
			res.NumNoise++
		} else {
			res.NumClustered++
		}
		if !rec.Identified() {
			continue
		}
		allIDs = append(allIDs, rec.Sequence)
		allLabels = append(allLabels, rec.Cluster)
		if !rec.IsNoise() {
			clusteredIDs = append(clusteredIDs, rec.Sequence)
			clusteredLabels = append(clusteredLabels, rec.Cluster)
		}
	}
	for _, s := range stats {
		mismatches += s.Mismatches
	}

	// Zero denominators yield NaN.
	res.PropClustered = float64(res.NumClustered) / float64(len(working))
	res.PropClusteredIncorrect = float64(mismatches) / float64(len(clusteredIDs))

	// Noise spectra are heterogeneous by construction, so homogeneity only
	// looks at clustered spectra while completeness counts them all.
	res.Homogeneity = Homogeneity(clusteredIDs, clusteredLabels)
	res.Completeness = Completeness(allIDs, allLabels)

	e.log.Debug("evaluation complete",
		"clustered", res.NumClustered,
		"noise", res.NumNoise,
		"mismatches", mismatches)

	return res, nil
}

// Evaluate scores the clustering in table with a default Evaluator.
func Evaluate(table core.Table, params Params) Result {
	res, _ := New().Evaluate(context.Background(), table, params)
	return res
}
