package phases

// SinglePhaseKind identifies a single phase, either as a nominal slot on a terminal or as the
// actual phase traced into that slot.
type SinglePhaseKind uint8

const (
	NONE SinglePhaseKind = iota
	A
	B
	C
	N
	X
	Y
	INVALID
)

var singlePhaseNames = [...]string{
	NONE:    "NONE",
	A:       "A",
	B:       "B",
	C:       "C",
	N:       "N",
	X:       "X",
	Y:       "Y",
	INVALID: "INVALID",
}

func (k SinglePhaseKind) String() string {
	if int(k) < len(singlePhaseNames) {
		return singlePhaseNames[k]
	}
	return "INVALID"
}

// IsNominal reports whether k can be used as a nominal slot (A, B, C, N, X or Y).
func (k SinglePhaseKind) IsNominal() bool {
	return k >= A && k <= Y
}

// IsActual reports whether k can occupy a nominal slot as a traced phase (A, B, C or N).
func (k SinglePhaseKind) IsActual() bool {
	return k >= A && k <= N
}

// ParseSinglePhaseKind maps a phase name to its kind, returning INVALID for unknown names.
func ParseSinglePhaseKind(name string) SinglePhaseKind {
	for k, n := range singlePhaseNames {
		if n == name {
			return SinglePhaseKind(k)
		}
	}
	return INVALID
}

// PhaseSet is a small bit set of single phases.
type PhaseSet uint8

// NewPhaseSet builds a set from the given phases. NONE and INVALID are ignored.
func NewPhaseSet(kinds ...SinglePhaseKind) PhaseSet {
	var s PhaseSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns s with k added.
func (s PhaseSet) With(k SinglePhaseKind) PhaseSet {
	if !k.IsNominal() {
		return s
	}
	return s | 1<<k
}

// Contains reports whether k is a member of s.
func (s PhaseSet) Contains(k SinglePhaseKind) bool {
	return k.IsNominal() && s&(1<<k) != 0
}

// Intersect returns the phases present in both sets.
func (s PhaseSet) Intersect(o PhaseSet) PhaseSet { return s & o }

// IsEmpty reports whether s holds no phases.
func (s PhaseSet) IsEmpty() bool { return s == 0 }

// Kinds lists the members of s in A, B, C, N, X, Y order.
func (s PhaseSet) Kinds() []SinglePhaseKind {
	kinds := make([]SinglePhaseKind, 0, 6)
	for k := A; k <= Y; k++ {
		if s.Contains(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s PhaseSet) String() string {
	out := ""
	for _, k := range s.Kinds() {
		out += k.String()
	}
	if out == "" {
		return "NONE"
	}
	return out
}
