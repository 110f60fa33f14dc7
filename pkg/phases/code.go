package phases

// PhaseCode is the ordered combination of single phases modelled on a terminal.
type PhaseCode uint8

const (
	PhaseCodeNONE PhaseCode = iota
	PhaseCodeA
	PhaseCodeB
	PhaseCodeC
	PhaseCodeN
	PhaseCodeAB
	PhaseCodeAC
	PhaseCodeAN
	PhaseCodeBC
	PhaseCodeBN
	PhaseCodeCN
	PhaseCodeABC
	PhaseCodeABN
	PhaseCodeACN
	PhaseCodeBCN
	PhaseCodeABCN
	PhaseCodeX
	PhaseCodeXN
	PhaseCodeXY
	PhaseCodeXYN
	PhaseCodeY
	PhaseCodeYN
)

type phaseCodeEntry struct {
	name   string
	phases []SinglePhaseKind
}

// phaseCodes is indexed by PhaseCode. The order of each phase list is the order the
// phases are reported in, which is also the order nominal phase paths are built in.
var phaseCodes = [...]phaseCodeEntry{
	PhaseCodeNONE: {"NONE", nil},
	PhaseCodeA:    {"A", []SinglePhaseKind{A}},
	PhaseCodeB:    {"B", []SinglePhaseKind{B}},
	PhaseCodeC:    {"C", []SinglePhaseKind{C}},
	PhaseCodeN:    {"N", []SinglePhaseKind{N}},
	PhaseCodeAB:   {"AB", []SinglePhaseKind{A, B}},
	PhaseCodeAC:   {"AC", []SinglePhaseKind{A, C}},
	PhaseCodeAN:   {"AN", []SinglePhaseKind{A, N}},
	PhaseCodeBC:   {"BC", []SinglePhaseKind{B, C}},
	PhaseCodeBN:   {"BN", []SinglePhaseKind{B, N}},
	PhaseCodeCN:   {"CN", []SinglePhaseKind{C, N}},
	PhaseCodeABC:  {"ABC", []SinglePhaseKind{A, B, C}},
	PhaseCodeABN:  {"ABN", []SinglePhaseKind{A, B, N}},
	PhaseCodeACN:  {"ACN", []SinglePhaseKind{A, C, N}},
	PhaseCodeBCN:  {"BCN", []SinglePhaseKind{B, C, N}},
	PhaseCodeABCN: {"ABCN", []SinglePhaseKind{A, B, C, N}},
	PhaseCodeX:    {"X", []SinglePhaseKind{X}},
	PhaseCodeXN:   {"XN", []SinglePhaseKind{X, N}},
	PhaseCodeXY:   {"XY", []SinglePhaseKind{X, Y}},
	PhaseCodeXYN:  {"XYN", []SinglePhaseKind{X, Y, N}},
	PhaseCodeY:    {"Y", []SinglePhaseKind{Y}},
	PhaseCodeYN:   {"YN", []SinglePhaseKind{Y, N}},
}

func (c PhaseCode) valid() bool { return int(c) < len(phaseCodes) }

func (c PhaseCode) String() string {
	if !c.valid() {
		return "INVALID"
	}
	return phaseCodes[c].name
}

// SinglePhases returns the phases making up c. The returned slice must not be modified.
func (c PhaseCode) SinglePhases() []SinglePhaseKind {
	if !c.valid() {
		return nil
	}
	return phaseCodes[c].phases
}

// Set returns the phases of c as a PhaseSet.
func (c PhaseCode) Set() PhaseSet {
	return NewPhaseSet(c.SinglePhases()...)
}

// Contains reports whether k is one of the phases of c.
func (c PhaseCode) Contains(k SinglePhaseKind) bool {
	return c.Set().Contains(k)
}

// ParsePhaseCode maps a phase code name such as "ABCN" to its code.
func ParsePhaseCode(name string) (PhaseCode, bool) {
	for c, e := range phaseCodes {
		if e.name == name {
			return PhaseCode(c), true
		}
	}
	return PhaseCodeNONE, false
}

// PhaseCodeFromSet finds the code whose phases are exactly s.
func PhaseCodeFromSet(s PhaseSet) PhaseCode {
	for c := range phaseCodes {
		if PhaseCode(c).Set() == s {
			return PhaseCode(c)
		}
	}
	return PhaseCodeNONE
}
