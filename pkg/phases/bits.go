package phases

// Packed status codec. Every function here is total: unknown slots or phases leave the
// status untouched rather than failing. Validation lives in PhaseStatus.

const (
	noSlot       = -1
	subFieldMask = 0x3
	byteMask     = 0xFF
)

// slotShift is the bit offset of the byte holding each nominal slot. X shares the A byte and
// Y shares the B byte.
var slotShift = [...]int{
	NONE:    noSlot,
	A:       0,
	B:       8,
	C:       16,
	N:       24,
	X:       0,
	Y:       8,
	INVALID: noSlot,
}

// subFieldShift is the bit offset, within a slot byte, of the sub-field for each actual phase.
var subFieldShift = [...]int{
	NONE:    noSlot,
	A:       0,
	B:       2,
	C:       4,
	N:       6,
	X:       noSlot,
	Y:       noSlot,
	INVALID: noSlot,
}

// subFieldOrder is the order sub-fields are inspected when decoding a slot byte.
var subFieldOrder = [...]SinglePhaseKind{A, B, C, N}

func shiftOf(table []int, k SinglePhaseKind) int {
	if int(k) >= len(table) {
		return noSlot
	}
	return table[k]
}

func slotByte(status uint32, nominal SinglePhaseKind) (uint32, bool) {
	shift := shiftOf(slotShift[:], nominal)
	if shift == noSlot {
		return 0, false
	}
	return (status >> shift) & byteMask, true
}

// occupied returns the actual phase held by a slot byte and its direction bits.
func occupied(b uint32) (SinglePhaseKind, PhaseDirection) {
	for _, k := range subFieldOrder {
		if bits := (b >> subFieldShift[k]) & subFieldMask; bits != 0 {
			return k, PhaseDirection(bits)
		}
	}
	return NONE, DirNONE
}

// StatusPhase decodes the actual phase occupying the nominal slot, or NONE.
func StatusPhase(status uint32, nominal SinglePhaseKind) SinglePhaseKind {
	b, ok := slotByte(status, nominal)
	if !ok {
		return NONE
	}
	k, _ := occupied(b)
	return k
}

// StatusDirection decodes the direction of whichever actual phase occupies the nominal slot.
func StatusDirection(status uint32, nominal SinglePhaseKind) PhaseDirection {
	b, ok := slotByte(status, nominal)
	if !ok {
		return DirNONE
	}
	_, d := occupied(b)
	return d
}

// StatusSet overwrites the nominal slot with the given actual phase and direction.
func StatusSet(status uint32, actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) uint32 {
	slot := shiftOf(slotShift[:], nominal)
	if slot == noSlot {
		return status
	}
	cleared := status &^ (byteMask << slot)
	sub := shiftOf(subFieldShift[:], actual)
	if sub == noSlot {
		return cleared
	}
	return cleared | (uint32(dir)&subFieldMask)<<(slot+sub)
}

// StatusAdd ORs the direction bits into the actual phase's sub-field of the nominal slot.
// Callers are responsible for the one-phase-per-slot rule.
func StatusAdd(status uint32, actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) uint32 {
	slot := shiftOf(slotShift[:], nominal)
	sub := shiftOf(subFieldShift[:], actual)
	if slot == noSlot || sub == noSlot {
		return status
	}
	return status | (uint32(dir)&subFieldMask)<<(slot+sub)
}

// StatusRemove clears the direction bits from the actual phase's sub-field of the nominal slot.
func StatusRemove(status uint32, actual SinglePhaseKind, dir PhaseDirection, nominal SinglePhaseKind) uint32 {
	slot := shiftOf(slotShift[:], nominal)
	sub := shiftOf(subFieldShift[:], actual)
	if slot == noSlot || sub == noSlot {
		return status
	}
	return status &^ ((uint32(dir) & subFieldMask) << (slot + sub))
}

// StatusClear zeroes the whole byte of the nominal slot.
func StatusClear(status uint32, nominal SinglePhaseKind) uint32 {
	slot := shiftOf(slotShift[:], nominal)
	if slot == noSlot {
		return status
	}
	return status &^ (byteMask << slot)
}
