package core

import (
	"errors"
	"testing"
)

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{
			name:    "valid identified record",
			rec:     Record{PrecursorCharge: 2, Cluster: 4, Sequence: "PEPTIDEK"},
			wantErr: false,
		},
		{
			name:    "valid noise record without identity",
			rec:     Record{PrecursorCharge: 3, Cluster: Noise},
			wantErr: false,
		},
		{
			name:    "negative charge",
			rec:     Record{PrecursorCharge: -1, Cluster: 0},
			wantErr: true,
		},
		{
			name:    "cluster below noise label",
			rec:     Record{PrecursorCharge: 2, Cluster: -2},
			wantErr: true,
		},
		{
			name:    "unparsable sequence",
			rec:     Record{PrecursorCharge: 2, Cluster: 0, Sequence: "PEP[TIDE"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestRecordName(t *testing.T) {
	rec := Record{Sequence: "PEPTIDE", PrecursorCharge: 2}
	if got := rec.Name(); got != "PEPTIDE/2" {
		t.Errorf("Expected name PEPTIDE/2, got %s", got)
	}

	rec.ID = "run1:scan=17"
	if got := rec.Name(); got != "run1:scan=17" {
		t.Errorf("Expected name run1:scan=17, got %s", got)
	}
}

func TestRecordFlags(t *testing.T) {
	rec := Record{Cluster: Noise}
	if !rec.IsNoise() {
		t.Error("Expected record with noise label to be noise")
	}
	if rec.Identified() {
		t.Error("Expected record without sequence to be unidentified")
	}

	rec = Record{Cluster: 0, Sequence: "AAK"}
	if rec.IsNoise() || !rec.Identified() {
		t.Errorf("Unexpected flags for %+v", rec)
	}
}
