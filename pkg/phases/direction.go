package phases

// PhaseDirection describes how a traced phase flows through a terminal.
//
// The values form a lattice over a 2-bit encoding: BOTH is IN|OUT and NONE is the empty set.
type PhaseDirection uint8

const (
	DirNONE PhaseDirection = 0
	DirIN   PhaseDirection = 1
	DirOUT  PhaseDirection = 2
	DirBOTH PhaseDirection = 3
)

func (d PhaseDirection) String() string {
	switch d {
	case DirNONE:
		return "NONE"
	case DirIN:
		return "IN"
	case DirOUT:
		return "OUT"
	case DirBOTH:
		return "BOTH"
	}
	return "INVALID"
}

// Has reports whether every bit of other is present in d. Nothing has NONE.
func (d PhaseDirection) Has(other PhaseDirection) bool {
	if other == DirNONE {
		return false
	}
	return d&other == other
}

// Plus returns the union of d and other.
func (d PhaseDirection) Plus(other PhaseDirection) PhaseDirection {
	return (d | other) & DirBOTH
}

// Minus returns d with the bits of other removed.
func (d PhaseDirection) Minus(other PhaseDirection) PhaseDirection {
	return d &^ other & DirBOTH
}

// NominalPhasePath records how one phase threads between two terminals: the phase leaves
// the from terminal on nominal slot From and arrives at the to terminal on nominal slot To.
type NominalPhasePath struct {
	From SinglePhaseKind
	To   SinglePhaseKind
}

func (p NominalPhasePath) String() string {
	return p.From.String() + "->" + p.To.String()
}

// StraightPaths builds the identity paths (k->k) for the given phases.
func StraightPaths(kinds ...SinglePhaseKind) []NominalPhasePath {
	paths := make([]NominalPhasePath, 0, len(kinds))
	for _, k := range kinds {
		paths = append(paths, NominalPhasePath{From: k, To: k})
	}
	return paths
}
