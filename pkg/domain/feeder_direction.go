package domain

// FeederDirection is the orientation of a terminal relative to its feeder head.
//
// A terminal is UPSTREAM when the feeder head is reached by leaving the equipment through it,
// and DOWNSTREAM when power leaves the equipment through it. Like phases.PhaseDirection it is a
// 2-bit lattice where BOTH is UPSTREAM|DOWNSTREAM.
type FeederDirection uint8

const (
	DirectionNone       FeederDirection = 0
	DirectionUpstream   FeederDirection = 1
	DirectionDownstream FeederDirection = 2
	DirectionBoth       FeederDirection = 3
)

func (d FeederDirection) String() string {
	switch d {
	case DirectionNone:
		return "NONE"
	case DirectionUpstream:
		return "UPSTREAM"
	case DirectionDownstream:
		return "DOWNSTREAM"
	case DirectionBoth:
		return "BOTH"
	}
	return "INVALID"
}

// ParseFeederDirection maps a direction name to its value.
func ParseFeederDirection(name string) (FeederDirection, bool) {
	for d := DirectionNone; d <= DirectionBoth; d++ {
		if d.String() == name {
			return d, true
		}
	}
	return DirectionNone, false
}

// Has reports whether every bit of other is present in d. Nothing has NONE.
func (d FeederDirection) Has(other FeederDirection) bool {
	if other == DirectionNone {
		return false
	}
	return d&other == other
}

// Plus returns the union of d and other.
func (d FeederDirection) Plus(other FeederDirection) FeederDirection {
	return (d | other) & DirectionBoth
}

// Minus returns d with the bits of other removed.
func (d FeederDirection) Minus(other FeederDirection) FeederDirection {
	return d &^ other & DirectionBoth
}

// Complement returns the direction seen from the other side of a connectivity node:
// leaving one terminal DOWNSTREAM means entering the next one from UPSTREAM.
func (d FeederDirection) Complement() FeederDirection {
	switch d {
	case DirectionUpstream:
		return DirectionDownstream
	case DirectionDownstream:
		return DirectionUpstream
	}
	return d
}
