package core

import "testing"

func TestParsePeptide(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantSeq    string
		wantMods   []Modification
		wantCharge int
		wantErr    bool
	}{
		{
			name:    "bare sequence",
			raw:     "PEPTIDEK",
			wantSeq: "PEPTIDEK",
		},
		{
			name:    "sptxt inline masses with charge",
			raw:     "n[305]AAC[160]K/3",
			wantSeq: "AACK",
			wantMods: []Modification{
				{Mass: 305, Position: -1, Name: "305"},
				{Mass: 160, Position: 2, Name: "160"},
			},
			wantCharge: 3,
		},
		{
			name:    "mass delta",
			raw:     "PEPM[+15.9949]K",
			wantSeq: "PEPMK",
			wantMods: []Modification{
				{Mass: 15.9949, Position: 3, Name: "+15.9949"},
			},
		},
		{
			name:    "maxquant named modification",
			raw:     "_PEPM(Oxidation (M))K_",
			wantSeq: "PEPMK",
			wantMods: []Modification{
				{Position: 3, Name: "Oxidation (M)"},
			},
		},
		{
			name:    "leading terminal modification",
			raw:     "[Acetyl]-PEPTIDE",
			wantSeq: "PEPTIDE",
			wantMods: []Modification{
				{Position: -1, Name: "Acetyl"},
			},
		},
		{
			name:    "c-terminal modification",
			raw:     "PEPTIDEc[17]",
			wantSeq: "PEPTIDE",
			wantMods: []Modification{
				{Mass: 17, Position: 7, Name: "17"},
			},
		},
		{name: "unbalanced bracket", raw: "PEPM[16K", wantErr: true},
		{name: "invalid character", raw: "PEP*TIDE", wantErr: true},
		{name: "no residues", raw: "[Acetyl]", wantErr: true},
		{name: "bad charge", raw: "PEPTIDE/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeptide(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeptide(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Sequence != tt.wantSeq {
				t.Errorf("Sequence = %s, want %s", got.Sequence, tt.wantSeq)
			}
			if got.Charge != tt.wantCharge {
				t.Errorf("Charge = %d, want %d", got.Charge, tt.wantCharge)
			}
			if len(got.Modifications) != len(tt.wantMods) {
				t.Fatalf("got %d modifications, want %d: %+v", len(got.Modifications), len(tt.wantMods), got.Modifications)
			}
			for i, mod := range got.Modifications {
				if mod != tt.wantMods[i] {
					t.Errorf("Modification %d = %+v, want %+v", i, mod, tt.wantMods[i])
				}
			}
		})
	}
}

func TestIdentityModeNormalize(t *testing.T) {
	tests := []struct {
		mode IdentityMode
		in   string
		want string
	}{
		{IdentityPeptidoform, "PEPM[+15.9949]K", "PEPM[+15.9949]K"},
		{IdentitySequence, "PEPM[+15.9949]K", "PEPMK"},
		{IdentitySequence, " _PEPM(ox)K_ ", "PEPMK"},
		{IdentitySequence, "", ""},
		{IdentitySequence, "not a peptide!", "not a peptide!"},
	}

	for _, tt := range tests {
		if got := tt.mode.Normalize(tt.in); got != tt.want {
			t.Errorf("%s.Normalize(%q) = %q, want %q", tt.mode, tt.in, got, tt.want)
		}
	}
}

func TestParseIdentityMode(t *testing.T) {
	for in, want := range map[string]IdentityMode{
		"":            IdentityPeptidoform,
		"peptidoform": IdentityPeptidoform,
		"Sequence":    IdentitySequence,
	} {
		got, err := ParseIdentityMode(in)
		if err != nil {
			t.Fatalf("ParseIdentityMode(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseIdentityMode(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseIdentityMode("residues"); err == nil {
		t.Error("Expected error for unknown identity mode")
	}
}
