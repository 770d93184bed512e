package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Modification represents a peptide modification with position and mass shift.
type Modification struct {
	Mass     float64 // Mass shift if given numerically, otherwise 0
	Position int     // 0-based position; -1 for N-term, len(seq) for C-term
	Name     string  // Modification name or the raw mass token (e.g., "Oxidation", "160")
}

// Peptide is a parsed peptide identification.
type Peptide struct {
	Sequence      string // Bare residue sequence
	Modifications []Modification
	Charge        int // Charge suffix ("/2"), 0 if absent
}

// ParsePeptide parses a peptide string with inline modifications.
// Accepted notations include SpectraST "n[305]AAC[160]K/3", mass deltas
// "PEPM[+15.9949]K", named mods "PEPM(Oxidation)K" and MaxQuant-style
// underscores "_PEPM(ox)K_".
func ParsePeptide(raw string) (Peptide, error) {
	var pep Peptide

	s := strings.TrimSpace(raw)
	if idx := strings.LastIndex(s, "/"); idx >= 0 && !strings.ContainsAny(s[idx:], "])") {
		charge, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return Peptide{}, fmt.Errorf("invalid charge in '%s': %w", raw, err)
		}
		pep.Charge = charge
		s = s[:idx]
	}
	s = strings.Trim(s, "_")

	var seq strings.Builder
	position := 0
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case c == '[' || c == '(':
			end, err := matchBracket(s, i)
			if err != nil {
				return Peptide{}, fmt.Errorf("invalid peptide '%s': %w", raw, err)
			}
			pos := position - 1 // Modifies the preceding residue
			if position == 0 {
				pos = -1
			}
			pep.Modifications = append(pep.Modifications, newModification(s[i+1:end], pos))
			i = end + 1

		case (c == 'n' || c == 'c') && i+1 < len(s) && (s[i+1] == '[' || s[i+1] == '('):
			end, err := matchBracket(s, i+1)
			if err != nil {
				return Peptide{}, fmt.Errorf("invalid peptide '%s': %w", raw, err)
			}
			pos := -1
			if c == 'c' {
				pos = position
			}
			pep.Modifications = append(pep.Modifications, newModification(s[i+2:end], pos))
			i = end + 1

		case c == '-' && (i == 0 || s[i-1] == ']' || s[i-1] == ')' || i == len(s)-1 || s[i+1] == '['):
			// Terminal separator in ProForma-like notation
			i++

		case unicode.IsUpper(c):
			seq.WriteRune(c)
			position++
			i++

		default:
			return Peptide{}, fmt.Errorf("invalid character '%c' at offset %d in peptide '%s'", c, i, raw)
		}
	}

	pep.Sequence = seq.String()
	if pep.Sequence == "" {
		return Peptide{}, fmt.Errorf("peptide '%s' has no residues", raw)
	}

	return pep, nil
}

// matchBracket returns the index of the bracket closing the one at open,
// honouring nesting such as "(Oxidation (M))".
func matchBracket(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unbalanced bracket at offset %d", open)
}

func newModification(token string, position int) Modification {
	mod := Modification{Position: position, Name: token}
	if mass, err := strconv.ParseFloat(token, 64); err == nil {
		mod.Mass = mass
	}
	return mod
}

// IdentityMode selects how peptide identities are compared.
type IdentityMode string

const (
	// IdentityPeptidoform compares identities verbatim, so differently
	// modified forms of a peptide are distinct.
	IdentityPeptidoform IdentityMode = "peptidoform"
	// IdentitySequence compares bare residue sequences.
	IdentitySequence IdentityMode = "sequence"
)

// ParseIdentityMode parses an identity mode name. The empty string selects
// IdentityPeptidoform.
func ParseIdentityMode(s string) (IdentityMode, error) {
	switch IdentityMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", IdentityPeptidoform:
		return IdentityPeptidoform, nil
	case IdentitySequence:
		return IdentitySequence, nil
	default:
		return "", fmt.Errorf("invalid identity mode '%s', must be peptidoform or sequence", s)
	}
}

// Normalize maps a raw identity to its comparison key. Unknown identities
// stay empty; identities that cannot be parsed are compared verbatim.
func (m IdentityMode) Normalize(sequence string) string {
	sequence = strings.TrimSpace(sequence)
	if sequence == "" || m != IdentitySequence {
		return sequence
	}
	pep, err := ParsePeptide(sequence)
	if err != nil {
		return sequence
	}
	return pep.Sequence
}
