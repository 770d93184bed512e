// Package core provides the spectrum record and cluster table models shared by
// the clusterqc readers, evaluators and writers.
package core

import (
	"fmt"
	"strings"
)

// Noise is the cluster label reserved for spectra that are not assigned to
// any real cluster.
const Noise = -1

// Record represents one clustered spectrum together with its ground-truth
// peptide identification.
type Record struct {
	ID              string // Spectrum identifier (e.g., "run1:scan=1042"), optional
	PrecursorCharge int    // Precursor charge state
	Cluster         int    // Predicted cluster label; Noise if unclustered
	Sequence        string // Ground-truth peptide identity; empty if unknown
}

// Identified reports whether the spectrum has a known peptide identity.
func (r Record) Identified() bool {
	return r.Sequence != ""
}

// IsNoise reports whether the spectrum carries the noise label.
func (r Record) IsNoise() bool {
	return r.Cluster == Noise
}

// Name returns the record name in format "ID" or "Sequence/Charge" if no ID is set.
func (r Record) Name() string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%s/%d", r.Sequence, r.PrecursorCharge)
}

// ValidationError represents an error found during record validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a record is usable as evaluation input. The evaluator
// itself performs no validation, so callers loading untrusted tables should
// run this first.
func (r Record) Validate() error {
	var errs []string

	if r.PrecursorCharge < 0 {
		errs = append(errs, "precursor charge must be non-negative")
	}
	if r.Cluster < Noise {
		errs = append(errs, fmt.Sprintf("cluster label %d is below the noise label %d", r.Cluster, Noise))
	}
	if r.Identified() {
		if _, err := ParsePeptide(r.Sequence); err != nil {
			errs = append(errs, fmt.Sprintf("invalid sequence: %v", err))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Record",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}
