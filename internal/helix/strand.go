package helix

import (
	"fmt"
	"math"
	"strings"
)

// Strand identifies one of the two helical tracks.
type Strand uint8

const (
	// StrandA carries the primary records (questions).
	StrandA Strand = iota
	// StrandB carries the secondary records (objectives).
	StrandB
)

// Strands lists both strands in draw order.
var Strands = [2]Strand{StrandA, StrandB}

func (s Strand) String() string {
	switch s {
	case StrandA:
		return "A"
	case StrandB:
		return "B"
	}
	return fmt.Sprintf("Strand(%d)", uint8(s))
}

// Phase is the angular offset that puts the two strands on opposite
// sides of the cylinder.
func (s Strand) Phase() float64 {
	switch s {
	case StrandA:
		return 0
	case StrandB:
		return math.Pi
	}
	return 0
}

// Opposite returns the other strand.
func (s Strand) Opposite() Strand {
	if s == StrandA {
		return StrandB
	}
	return StrandA
}

// ParseStrand accepts "a", "b", "question" or "objective" in any case.
func ParseStrand(s string) (Strand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "question", "questions":
		return StrandA, nil
	case "b", "objective", "objectives":
		return StrandB, nil
	}
	return 0, fmt.Errorf("unknown strand %q (use A or B)", s)
}
